package domain

import "strings"

// Project is a portfolio entry. Owner is the owning username; it is
// denormalized and not checked against the users collection.
type Project struct {
	ID              string `json:"_id"`
	Name            string `json:"projectName"`
	Owner           string `json:"username"`
	Collaborators   string `json:"collaborators,omitempty"`
	Description     string `json:"description"`
	DeploymentLink  string `json:"deploymentLink,omitempty"`
	DeploymentImage string `json:"deploymentImage,omitempty"`
	UserAvatarURL   string `json:"userAvatarUrl,omitempty"`
	RepoLink        string `json:"repoLink,omitempty"`
}

// ProjectChanges lists the fields a project update overwrites. Fields left
// empty are stored empty; nothing is carried over from the previous version.
type ProjectChanges struct {
	Name            string
	Description     string
	Collaborators   string
	DeploymentLink  string
	DeploymentImage string
	RepoLink        string
}

// Apply overwrites the editable fields of p with c.
func (c ProjectChanges) Apply(p *Project) {
	p.Name = c.Name
	p.Description = c.Description
	p.Collaborators = c.Collaborators
	p.DeploymentLink = c.DeploymentLink
	p.DeploymentImage = c.DeploymentImage
	p.RepoLink = c.RepoLink
}

// VisibleTo reports whether username owns the project or appears anywhere in
// its free-text collaborators field, ignoring case.
func (p *Project) VisibleTo(username string) bool {
	if p.Owner == username {
		return true
	}
	if username == "" {
		return false
	}
	return strings.Contains(strings.ToLower(p.Collaborators), strings.ToLower(username))
}
