package common

// Defaults shared by the server and the client.
const (
	// AuthHeaderName carries the url-encoded username, password and machine_id.
	AuthHeaderName = "Seek-Custom-Auth"

	// CheckPath is the single endpoint answering auth checks.
	CheckPath = "/check"

	// Keys inside the AuthHeaderName value.
	KeyUsername  = "username"
	KeyPassword  = "password"
	KeyMachineID = "machine_id"
)
