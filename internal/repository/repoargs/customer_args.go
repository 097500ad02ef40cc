package repoargs

type CustomerCreate struct {
	UserID int64
	Name   string
	Phone  string
}

// CustomerUpdate applies only non-nil fields.
type CustomerUpdate struct {
	Name  *string
	Phone *string
}
