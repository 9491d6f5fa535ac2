package constvars

const (
	// Accession code wire contract: prefix, 8 digit date, 4 digit counter.
	RegexAccessionCode = `^[A-Z]{2}-\d{8}-\d{4}$`
)
