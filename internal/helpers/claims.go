package helpers

type EnhancedClaims struct {
	*CustomClaims
	UserID    string `json:"id"`
	Email     string `json:"email,omitempty"`
	Username  string `json:"username,omitempty"`
	Fullname  string `json:"fullname,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

func (ec *EnhancedClaims) IsOwner(userID string) bool {
	return ec.UserID == userID
}

// DisplayName is the name stamped onto reviews and comments the principal
// authors: username first, then full name, then "Anonymous".
func (ec *EnhancedClaims) DisplayName() string {
	if ec.Username != "" {
		return ec.Username
	}
	if ec.Fullname != "" {
		return ec.Fullname
	}
	return "Anonymous"
}
