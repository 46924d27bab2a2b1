package enums

import "fmt"

// AppPlatform is the distribution target of a managed application.
type AppPlatform string

const (
	AppPlatformAndroid AppPlatform = "android"
	AppPlatformIOS     AppPlatform = "ios"
	AppPlatformWeb     AppPlatform = "web"
)

var validAppPlatforms = []AppPlatform{
	AppPlatformAndroid,
	AppPlatformIOS,
	AppPlatformWeb,
}

// String implements fmt.Stringer.
func (p AppPlatform) String() string {
	return string(p)
}

// IsValid reports whether the value is a known platform.
func (p AppPlatform) IsValid() bool {
	for _, candidate := range validAppPlatforms {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseAppPlatform converts raw input into AppPlatform.
func ParseAppPlatform(value string) (AppPlatform, error) {
	for _, candidate := range validAppPlatforms {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid app platform %q", value)
}
