package handler

// messageResponse is the body of the root probe and of every 4xx reply.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Cohorts ---

type createCohortRequest struct {
	CohortName string `json:"cohortName" validate:"required"`
}

// updateCohortRequest accepts any cohort fields; only cohortName is applied.
type updateCohortRequest struct {
	CohortName string `json:"cohortName"`
}

// --- Users ---

type registerUserRequest struct {
	Username   string `json:"username"   validate:"required"`
	GitURL     string `json:"gitUrl"     validate:"required"`
	UserAvatar string `json:"userAvatar" validate:"required"`
}

// updateProfileRequest overwrites every profile field; omitted ones are cleared.
type updateProfileRequest struct {
	FullName string `json:"fullName"`
	GitURL   string `json:"gitUrl"`
	Email    string `json:"email"`
	LinkedIn string `json:"linkedIn"`
	AboutMe  string `json:"aboutMe"`
	Cohort   string `json:"cohort"`
}

// --- Projects ---

type createProjectRequest struct {
	ProjectName     string `json:"projectName"   validate:"required"`
	Username        string `json:"username"      validate:"required"`
	Collaborators   string `json:"collaborators"`
	Description     string `json:"description"   validate:"required"`
	DeploymentLink  string `json:"deploymentLink"`
	DeploymentImage string `json:"deploymentImage"`
	UserAvatarURL   string `json:"userAvatarUrl" validate:"required"`
	RepoLink        string `json:"repoLink"      validate:"required"`
}

// updateProjectRequest overwrites every editable field; omitted ones are
// cleared.
type updateProjectRequest struct {
	ProjectName     string `json:"projectName" validate:"required"`
	Collaborators   string `json:"collaborators"`
	Description     string `json:"description" validate:"required"`
	DeploymentLink  string `json:"deploymentLink"`
	DeploymentImage string `json:"deploymentImage"`
	RepoLink        string `json:"repoLink"`
}
