package git

import json "github.com/goccy/go-json"

// PullRequest describes a pull request to open. Values
// are immutable once built with NewPullRequest.
type PullRequest struct {
	repo  string
	base  string
	head  string
	title string
	body  string
}

// NewPullRequest builds a descriptor. head is the
// "<owner>:<branch>" reference of the fork branch.
func NewPullRequest(
	repo string,
	base string,
	head string,
	title string,
	body string,
) PullRequest {
	return PullRequest{
		repo:  repo,
		base:  base,
		head:  head,
		title: title,
		body:  body,
	}
}

// HeadRef formats the cross-repository head reference
// for branch on owner's fork.
func HeadRef(owner string, branch string) string {
	return owner + ":" + branch
}

// Repo returns the target repository, "owner/name".
func (p PullRequest) Repo() string { return p.repo }

// Base returns the branch the change merges into.
func (p PullRequest) Base() string { return p.base }

// Head returns the head reference.
func (p PullRequest) Head() string { return p.head }

// Title returns the pull request title.
func (p PullRequest) Title() string { return p.title }

// Body returns the pull request description.
func (p PullRequest) Body() string { return p.body }

type pullRequestJSON struct {
	Repo  string `json:"repo"`
	Base  string `json:"base"`
	Head  string `json:"head"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// MarshalJSON encodes the five fields as an object.
func (p PullRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal(pullRequestJSON{
		Repo:  p.repo,
		Base:  p.base,
		Head:  p.head,
		Title: p.title,
		Body:  p.body,
	})
}

// String returns the JSON form, or the bare head
// reference if encoding fails.
func (p PullRequest) String() string {
	by, err := p.MarshalJSON()
	if err != nil {
		return p.head
	}

	return string(by)
}
