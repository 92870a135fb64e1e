// Package avatar derives profile image URLs for members without one.
package avatar

import (
	"net/url"
	"strings"

	"kusgan/internal/model"
)

const defaultName = "Volunteer"

// ProfileImageURL returns the avatar URL for a display name. The formula is
// deterministic: the same name always resolves to the same image, so avatars
// stay stable across reloads and across records that never stored one.
func ProfileImageURL(name string) string {
	if name == "" {
		name = defaultName
	}
	// Match percent-encoding of the original records, which never used '+'.
	encoded := strings.ReplaceAll(url.QueryEscape(name), "+", "%20")
	return "https://ui-avatars.com/api/?name=" + encoded + "&background=dc2626&color=ffffff&bold=true"
}

// Enrich fills in the derived avatar for a member lacking an explicit one.
func Enrich(m *model.Member) {
	if m.ProfileImage == "" {
		m.ProfileImage = ProfileImageURL(m.Name)
	}
}
