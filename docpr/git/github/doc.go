// Package github implements a git.Provider that opens pull requests through
// the GitHub REST API (cloud or enterprise) instead of the gh CLI. Configure
// it with a personal access token; set EnterpriseHost for GitHub Enterprise
// installations.
package github
