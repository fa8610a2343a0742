package user

type Request struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}
