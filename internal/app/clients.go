package app

import "context"

// RegistryClient resolves package names into repository urls.
//
//go:generate mockgen -destination mock/clients.go -package mock github.com/anvlkv/acknowledgements/internal/app RegistryClient,GithubClient,HostClient
type RegistryClient interface {
	// RepositoryURL returns repository url of the package, empty if the package doesn't declare one.
	RepositoryURL(ctx context.Context, name string) (string, error)
}

// GithubClient returns details about gihub projects and their contributors.
type GithubClient interface {
	RateLimit(ctx context.Context) (Quota, error)
	Project(ctx context.Context, owner string, repo string) (Project, error)
	// Contributors returns given page of contributors, pages are numbered from 1.
	Contributors(ctx context.Context, owner string, repo string, page int) (ContributorsPage, error)
}

// HostClient returns details about projects hosted on gitlab-like services.
type HostClient interface {
	Project(ctx context.Context, host string, owner string, repo string) (Project, error)
	Contributors(ctx context.Context, host string, owner string, repo string) ([]Contributor, error)
}
