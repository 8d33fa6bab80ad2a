package models

// Account is a credential record. MachineID is empty until the first
// successful check binds it; after that it never changes.
type Account struct {
	UserName     string
	PasswordHash string
	MachineID    string
}

// Bound reports whether a machine id has been bound to the account.
func (a *Account) Bound() bool {
	return a.MachineID != ""
}
