package engineer

type CreateEngineerRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}
