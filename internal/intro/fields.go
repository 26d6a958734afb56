package intro

const (
	KeyName             = "name"
	KeyDepartment       = "department"
	KeyResponsibilities = "responsibilities"
	KeyPreviousCompany  = "previousCompany"
	KeyMBTI             = "mbti"
	KeyHobbies          = "hobbies"
	KeyTMI              = "tmi"
	KeyGreetings        = "greetings"
	KeyTimestamp        = "timestamp"
)

// Field describes one user-editable input of the introduction form.
type Field struct {
	Key       string
	Label     string // message key, localized by i18n
	Icon      string // font-awesome icon name
	Multiline bool
}

// Fields lists the form inputs in display order.
var Fields = []Field{
	{Key: KeyName, Label: "Name", Icon: "user"},
	{Key: KeyDepartment, Label: "Department", Icon: "building"},
	{Key: KeyResponsibilities, Label: "Responsibilities", Icon: "briefcase", Multiline: true},
	{Key: KeyPreviousCompany, Label: "Previous company", Icon: "industry"},
	{Key: KeyMBTI, Label: "MBTI", Icon: "brain"},
	{Key: KeyHobbies, Label: "Hobbies", Icon: "heart"},
	{Key: KeyTMI, Label: "My TMI", Icon: "lightbulb", Multiline: true},
	{Key: KeyGreetings, Label: "A word to my cohort", Icon: "comments", Multiline: true},
}

// DefaultRequired is the required set used when configuration does not name one.
var DefaultRequired = []string{
	KeyName,
	KeyDepartment,
	KeyResponsibilities,
	KeyPreviousCompany,
	KeyMBTI,
	KeyHobbies,
	KeyGreetings,
}

// LookupField returns the descriptor for a wire key.
func LookupField(key string) (Field, bool) {
	for _, f := range Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}
