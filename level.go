package filelog

// Priority returns the numeric priority of s, or -1 if s is not a known severity.
func (s Severity) Priority() int {
	if p, ok := levelTable[s]; ok {
		return p
	}
	return -1
}

// Valid reports whether s is one of the eight known severities.
func (s Severity) Valid() bool {
	_, ok := levelTable[s]
	return ok
}

func (s Severity) String() string {
	return string(s)
}

// Priority looks up the numeric priority of a severity.
// Unknown names yield a *ConfigurationError.
func Priority(s Severity) (int, error) {
	p, ok := levelTable[s]
	if !ok {
		return 0, &ConfigurationError{Value: string(s), Reason: "unknown severity"}
	}
	return p, nil
}

// ParseSeverity converts a caller-supplied value into a Severity. Only string
// values (or Severity itself) are accepted, and the match is exact: the names
// are wire-stable.
func ParseSeverity(v interface{}) (Severity, error) {
	var name string
	switch t := v.(type) {
	case Severity:
		name = string(t)
	case string:
		name = t
	default:
		return "", &ConfigurationError{Value: v, Reason: "severity must be a string"}
	}
	s := Severity(name)
	if !s.Valid() {
		return "", &ConfigurationError{Value: name, Reason: "unknown severity"}
	}
	return s, nil
}

// Allows reports whether a record at level passes threshold. Both must be
// known severities; unknown values never pass.
func Allows(threshold, level Severity) bool {
	t, ok := levelTable[threshold]
	if !ok {
		return false
	}
	l, ok := levelTable[level]
	if !ok {
		return false
	}
	return l <= t
}

// Severities returns all severities, most severe first.
func Severities() []Severity {
	out := make([]Severity, len(orderedSeverities))
	copy(out, orderedSeverities)
	return out
}
