package domain

// ActivityPoint is a physical weighbridge location. Address doubles as the
// host of its serial-to-Ethernet weighbridge bridge; CameraIDs reference
// independently lifecycled cameras.
type ActivityPoint struct {
	ID        uint
	Name      string
	Address   string
	IsActive  bool
	CameraIDs []int64
}

type Camera struct {
	ID            uint
	Model         string
	IPAddress     string
	RTSPURL       string
	Status        string
	Configuration string
	Username      string
	Password      string
}

// User is the authenticated identity supplied by the auth collaborator. The
// core trusts it without re-validating credentials.
type User struct {
	ID   uint
	Role string
}

func (u User) IsAdmin() bool {
	return u.Role == "admin"
}
