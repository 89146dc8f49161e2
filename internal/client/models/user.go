// Package models contains the client-side domain types exchanged with
// the Hoaxify API.
package models

// User is a Hoaxify account as the client sees it.
//
// Password is only populated for the locally authenticated user; the API
// never returns it. It is kept client-side because every authenticated
// request re-derives its Basic credentials from username:password.
type User struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Image       string `json:"image"`
	Password    string `json:"password,omitempty"`
	IsLoggedIn  bool   `json:"isLoggedIn"`
}

// ProfileImagePath is the server path serving stored avatar images.
const ProfileImagePath = "/images/profile/"

// ImageURL returns the server-relative URL of the user's avatar, or an
// empty string when the user has none. During an edit the Image field may
// hold an inline data URI instead of a stored filename; that value is
// returned as is, since it is already displayable.
func (u User) ImageURL() string {
	if u.Image == "" {
		return ""
	}
	if len(u.Image) > 5 && u.Image[:5] == "data:" {
		return u.Image
	}
	return ProfileImagePath + u.Image
}
