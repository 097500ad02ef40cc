package repoargs

type CreateUser struct {
	Name     string
	Email    string
	Password string
}

// UpdateProfile applies only non-nil fields.
type UpdateProfile struct {
	Name  *string
	Email *string
}
