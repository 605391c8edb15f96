package poproject

// Report describes what one operation did, or would have done in dry-run.
type Report struct {
	Operation string          `yaml:"operation"`
	Locale    string          `yaml:"locale,omitempty"`
	Project   string          `yaml:"project,omitempty"`
	DryRun    bool            `yaml:"dry_run"`
	Catalogs  []CatalogReport `yaml:"catalogs"`
	Warnings  []string        `yaml:"warnings,omitempty"`
	// AffectedFiles are the distinct source files referenced by entries a
	// merge changed.
	AffectedFiles []string `yaml:"affected_files,omitempty"`
	// Unmatched lists input msgids a merge found no tagged entry for.
	Unmatched []string `yaml:"unmatched,omitempty"`
}

// CatalogReport is the outcome for one catalog.
type CatalogReport struct {
	Path string `yaml:"path"`
	// Count is the number of entries tagged, extracted, merged or cleaned.
	Count int `yaml:"count"`
	// Entries names the msgids counted, in catalog order.
	Entries []string `yaml:"entries,omitempty"`
	Saved   bool     `yaml:"saved"`
	Skipped bool     `yaml:"skipped,omitempty"`
	// ProjectFile is the standalone project catalog written or removed.
	ProjectFile string `yaml:"project_file,omitempty"`
	Removed     bool   `yaml:"removed,omitempty"`
}

// Total sums Count over all catalogs.
func (r *Report) Total() int {
	n := 0
	for _, c := range r.Catalogs {
		n += c.Count
	}
	return n
}

func (r *Report) warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
}
