package handler

import (
	"github.com/codecohort/alumni-directory/internal/core/domain"
	"github.com/codecohort/alumni-directory/internal/core/ports"
)

func toProject(req createProjectRequest) *domain.Project {
	return &domain.Project{
		Name:            req.ProjectName,
		Owner:           req.Username,
		Collaborators:   req.Collaborators,
		Description:     req.Description,
		DeploymentLink:  req.DeploymentLink,
		DeploymentImage: req.DeploymentImage,
		UserAvatarURL:   req.UserAvatarURL,
		RepoLink:        req.RepoLink,
	}
}

func toProjectChanges(req updateProjectRequest) domain.ProjectChanges {
	return domain.ProjectChanges{
		Name:            req.ProjectName,
		Description:     req.Description,
		Collaborators:   req.Collaborators,
		DeploymentLink:  req.DeploymentLink,
		DeploymentImage: req.DeploymentImage,
		RepoLink:        req.RepoLink,
	}
}

func toUpdateProfileInput(req updateProfileRequest) ports.UpdateProfileInput {
	return ports.UpdateProfileInput{
		Profile: domain.Profile{
			FullName: req.FullName,
			GitURL:   req.GitURL,
			Email:    req.Email,
			LinkedIn: req.LinkedIn,
			AboutMe:  req.AboutMe,
		},
		CohortID: req.Cohort,
	}
}

func toRegisterInput(req registerUserRequest) ports.RegisterInput {
	return ports.RegisterInput{
		Username:   req.Username,
		GitURL:     req.GitURL,
		UserAvatar: req.UserAvatar,
	}
}
