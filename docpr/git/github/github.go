package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v68/github"

	"github.com/byte4ever/docpr/docpr/git"
)

// ErrInvalidRepo is returned for a target repository
// that is not of the form "owner/name".
var ErrInvalidRepo = errors.New("repository must be owner/name")

// Config holds the settings needed to create a GitHub
// pull request provider.
type Config struct {
	// AccessToken is a personal access token or
	// GitHub App token used for authentication.
	AccessToken string
	// EnterpriseHost is an optional GitHub Enterprise
	// hostname (e.g. "git.corp.example.com"). Leave
	// empty for github.com.
	EnterpriseHost string
	// BaseURL overrides the REST endpoint. It must end
	// with a slash. Takes precedence over
	// EnterpriseHost.
	BaseURL string
}

// Provider opens pull requests on GitHub.
//
// Pattern: Strategy -- implements git.Provider.
type Provider struct {
	client *gh.Client
}

// NewProvider validates cfg and returns a Provider
// ready to open pull requests.
func NewProvider(cfg Config) (*Provider, error) {
	const errCtx = "creating github provider"

	if cfg.AccessToken == "" {
		return nil, fmt.Errorf(
			"%s: access token must be set", errCtx,
		)
	}

	client := gh.NewClient(nil).
		WithAuthToken(cfg.AccessToken)

	switch {
	case cfg.BaseURL != "":
		u, err := url.Parse(cfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf(
				"%s: base url: %w", errCtx, err,
			)
		}

		client.BaseURL = u

	case cfg.EnterpriseHost != "":
		baseURL := "https://" +
			cfg.EnterpriseHost + "/api/v3/"
		uploadURL := "https://" +
			cfg.EnterpriseHost + "/api/uploads/"

		var err error

		client, err = client.WithEnterpriseURLs(
			baseURL, uploadURL,
		)
		if err != nil {
			return nil, fmt.Errorf(
				"%s: enterprise urls: %w",
				errCtx, err,
			)
		}
	}

	return &Provider{client: client}, nil
}

// CreatePR opens pr and returns its HTML URL. If a pull
// request already exists for the head/base pair (HTTP
// 422) the existing one is returned.
func (p *Provider) CreatePR(
	ctx context.Context,
	pr git.PullRequest,
) (string, error) {
	const errCtx = "creating github pull request"

	owner, repo, err := splitRepo(pr.Repo())
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	title, head, base, body := pr.Title(), pr.Head(), pr.Base(), pr.Body()

	created, resp, err := p.client.PullRequests.Create(
		ctx, owner, repo, &gh.NewPullRequest{
			Title: &title,
			Head:  &head,
			Base:  &base,
			Body:  &body,
		},
	)
	if err == nil {
		return created.GetHTMLURL(), nil
	}

	// HTTP 422: PR already exists for this
	// head/base pair.
	if resp != nil &&
		resp.StatusCode ==
			http.StatusUnprocessableEntity {
		existing, findErr := p.findOpen(
			ctx, owner, repo, head, base,
		)
		if findErr == nil && existing != "" {
			slog.Info(
				"reusing existing pull request",
				"url", existing,
			)

			return existing, nil
		}
	}

	logResponse(resp)

	return "", fmt.Errorf("%s: %w", errCtx, err)
}

func (p *Provider) findOpen(
	ctx context.Context,
	owner string,
	repo string,
	head string,
	base string,
) (string, error) {
	prs, _, err := p.client.PullRequests.List(
		ctx, owner, repo, &gh.PullRequestListOptions{
			State: "open",
			Head:  head,
			Base:  base,
		},
	)
	if err != nil {
		return "", fmt.Errorf(
			"listing pull requests: %w", err,
		)
	}

	if len(prs) == 0 {
		return "", nil
	}

	return prs[0].GetHTMLURL(), nil
}

// logResponse logs the response body for debugging.
func logResponse(resp *gh.Response) {
	if resp == nil || resp.Body == nil {
		return
	}

	defer resp.Body.Close() //nolint:errcheck

	rb, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		slog.Warn(
			"cannot read response body",
			"error", readErr,
		)

		return
	}

	slog.Warn("github response", "body", string(rb))
}

func splitRepo(full string) (string, string, error) {
	owner, repo, ok := strings.Cut(full, "/")
	if !ok || owner == "" || repo == "" ||
		strings.Contains(repo, "/") {
		return "", "", fmt.Errorf(
			"%w: %q", ErrInvalidRepo, full,
		)
	}

	return owner, repo, nil
}
