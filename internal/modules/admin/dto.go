package admin

type ListTutorsQuery struct {
	IsVerified *bool  `form:"isVerified"`
	Page       string `form:"page"`
	Limit      string `form:"limit"`
}

// VerifyTutorRequest is optional. An empty body verifies the tutor.
type VerifyTutorRequest struct {
	IsVerified *bool `json:"isVerified"`
}
