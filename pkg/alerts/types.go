package alerts

// Type represents the alert severity.
// Any string is accepted; the four constants are the canonical values
// understood by the bundled themes.
type Type string

const (
	TypeSuccess Type = "success"
	TypeError   Type = "error"
	TypeWarning Type = "warning"
	TypeInfo    Type = "info"
)

// Kind is a rendering hint describing how an alert is presented.
type Kind string

const (
	KindAlert  Kind = "alert"
	KindToast  Kind = "toast"
	KindModal  Kind = "modal"
	KindInline Kind = "inline"
)

// IsCanonical reports whether t is one of the four built-in types.
func (t Type) IsCanonical() bool {
	switch t {
	case TypeSuccess, TypeError, TypeWarning, TypeInfo:
		return true
	}
	return false
}

// String returns the type name as stored.
func (t Type) String() string { return string(t) }

// String returns the kind name as stored.
func (k Kind) String() string { return string(k) }
