package gen

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/aboutkit/aboutkit/internal/model"
	"github.com/aboutkit/aboutkit/pkg/about"
)

// NoticeFileName is the Android per-directory notice file.
const NoticeFileName = "NOTICE"

// ModuleLicenseName returns the Android MODULE_LICENSE_* marker for key,
// e.g. "MODULE_LICENSE_APACHE_2_0" for apache-2.0.
func ModuleLicenseName(key string) string {
	r := strings.NewReplacer("-", "_", ".", "_", "+", "_PLUS")
	return "MODULE_LICENSE_" + strings.ToUpper(r.Replace(key))
}

// writeModuleLicenses creates an empty marker file per license key beside
// the record's ABOUT file.
func writeModuleLicenses(record *model.Record) about.Diagnostics {
	var diags about.Diagnostics
	dir := filepath.Dir(record.Location)
	for _, ref := range record.LicenseRefs() {
		p := filepath.Join(dir, ModuleLicenseName(ref.Key))
		if err := os.WriteFile(p, nil, 0644); err != nil {
			diags.Add(about.Error, "Cannot write %s: %v", filepath.ToSlash(p), err)
		}
	}
	return diags
}

// noticeSet accumulates NOTICE content per directory.
type noticeSet struct {
	order    []string
	contents map[string][]string
}

func newNoticeSet() *noticeSet {
	return &noticeSet{contents: make(map[string][]string)}
}

// add appends the record's copyright and license texts to the NOTICE of its
// directory.
func (n *noticeSet) add(record *model.Record) {
	var parts []string
	if c := record.Get(model.FieldCopyright); c != "" {
		parts = append(parts, c)
	}
	for _, ref := range record.LicenseRefs() {
		if ref.Text != "" {
			parts = append(parts, strings.TrimRight(ref.Text, "\n"))
		}
	}
	if len(parts) == 0 {
		return
	}

	p := filepath.Join(filepath.Dir(record.Location), NoticeFileName)
	if _, ok := n.contents[p]; !ok {
		n.order = append(n.order, p)
	}
	n.contents[p] = append(n.contents[p], strings.Join(parts, "\n\n"))
}

// write creates each NOTICE file. Existing files are left alone and reported.
func (n *noticeSet) write() about.Diagnostics {
	var diags about.Diagnostics
	for _, p := range n.order {
		if _, err := os.Stat(p); err == nil {
			diags.Add(about.Error, "NOTICE file already exist at: %s", filepath.ToSlash(p))
			continue
		}
		content := strings.Join(n.contents[p], "\n\n") + "\n"
		if err := os.WriteFile(p, []byte(content), 0644); err != nil {
			diags.Add(about.Error, "Cannot write %s: %v", filepath.ToSlash(p), err)
		}
	}
	return diags
}
