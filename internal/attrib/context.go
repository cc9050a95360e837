package attrib

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/aboutkit/aboutkit/internal/inventory"
	"github.com/aboutkit/aboutkit/internal/license"
	"github.com/aboutkit/aboutkit/internal/model"
	"github.com/aboutkit/aboutkit/pkg/about"
)

// CommonLicenses are keys of licenses whose full text attribution documents
// usually print once in an appendix rather than per component.
var CommonLicenses = []string{
	"aes-128-3.0", "apache-1.1", "apache-2.0", "apple-attribution-1997",
	"apple-excl", "apsl-2.0", "arphic-public", "artistic-perl-1.0",
	"artistic-2.0", "bitstream", "boost-1.0", "broadcom-cfe", "bsd-new",
	"bsd-original", "bsd-original-uc", "bsd-simplified",
	"cmu-computing-services", "cddl-1.0", "cddl-1.1", "cpl-1.0", "cc-by-2.5",
	"cc-by-sa-3.0", "curl", "freetype", "gpl-2.0", "gpl-2.0-bison",
	"gpl-2.0-glibc", "gpl-3.0", "lgpl-2.0", "lgpl-2.1", "gpl-2.0-plus-linking",
	"gpl-2.0-broadcom-linking", "ijg", "isc", "larabie", "libpng",
	"ms-limited-public", "ms-pl", "ms-rl", "ms-ttf-eula", "mit", "mpl-1.1",
	"mpl-2.0", "net-snmp", "npl-1.1", "ntpl", "openssl-ssleay",
	"ssleay-windows", "rsa-md4", "rsa-md5", "sfl-license", "sgi-freeb-2.0",
	"sun-rpc", "tcl", "tidy", "uoi-ncsa", "x11", "zlib",
}

// Component is the template view of one ABOUT record.
type Component struct {
	// ID is a stable anchor derived from the ABOUT file path.
	ID            string
	AboutFilePath string
	Name          string
	Version       string
	Description   string
	HomepageURL   string
	DownloadURL   string
	PackageURL    string
	Copyright     string
	Notice        string

	LicenseExpression     string
	LicenseNameExpression string
	SPDXLicenseExpression string
	Licenses              []*license.License

	Redistribute    bool
	Attribute       bool
	Modified        bool
	TrackChanges    bool
	InternalUseOnly bool

	// Fields holds every field with content, keyed by field name.
	Fields map[string]string
}

// Context is the data passed to attribution templates.
type Context struct {
	Components []*Component

	// Licenses holds each license used by a component once, sorted by key.
	Licenses []*license.License

	CommonLicenses  []string
	Variables       map[string]string
	GeneratedAt     time.Time
	ToolVersion     string
	MinLicenseScore float64
}

// IsCommon reports whether key is one of the common licenses.
func (c *Context) IsCommon(key string) bool {
	for _, k := range c.CommonLicenses {
		if k == key {
			return true
		}
	}
	return false
}

// Options configures attribution.
type Options struct {
	// ReferenceDir holds <key>.LICENSE texts used before any library.
	ReferenceDir string

	// Library fetches license texts not found locally. Nil disables fetching.
	Library license.Library

	Variables       map[string]string
	MinLicenseScore float64
	ToolVersion     string

	// Now returns the generation time. Defaults to time.Now.
	Now func() time.Time

	Logger about.Logger
}

// BuildContext resolves license texts and builds the template context for
// records, in input order.
func BuildContext(ctx context.Context, records []*model.Record, opts Options) (*Context, about.Diagnostics) {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	r := newResolver(opts)

	var diags about.Diagnostics
	unique := make(map[string]*license.License)
	var components []*Component
	for _, record := range records {
		c, cdiags := r.component(ctx, record)
		diags.Extend(cdiags)
		for _, lic := range c.Licenses {
			if prev, ok := unique[lic.Key]; !ok || (prev.Text == "" && lic.Text != "") {
				unique[lic.Key] = lic
			}
		}
		components = append(components, c)
	}
	diags.Extend(r.diags)

	variables := opts.Variables
	if variables == nil {
		variables = map[string]string{}
	}
	return &Context{
		Components:      components,
		Licenses:        license.SortByKey(unique),
		CommonLicenses:  CommonLicenses,
		Variables:       variables,
		GeneratedAt:     now().UTC(),
		ToolVersion:     opts.ToolVersion,
		MinLicenseScore: opts.MinLicenseScore,
	}, diags.Unique()
}

// resolver looks up license texts by key, first in the reference directory
// and then in the library. Results are cached per key. An authorization or
// cancellation failure disables further library lookups.
type resolver struct {
	reference license.Library
	library   license.Library
	logger    about.Logger
	cache     map[string]*license.License
	diags     about.Diagnostics
}

func newResolver(opts Options) *resolver {
	r := &resolver{library: opts.Library, logger: opts.Logger, cache: make(map[string]*license.License)}
	if opts.ReferenceDir != "" {
		r.reference = license.NewReferenceLibrary(opts.ReferenceDir)
	}
	return r
}

func (r *resolver) lookup(ctx context.Context, key string) *license.License {
	if lic, ok := r.cache[key]; ok {
		return lic
	}
	var found *license.License
	for _, lib := range []license.Library{r.reference, r.library} {
		if lib == nil {
			continue
		}
		lic, err := lib.Fetch(ctx, key)
		if err == nil {
			found = lic
			break
		}
		if errors.Is(err, license.ErrUnknownLicense) {
			continue
		}
		r.diags = append(r.diags, license.Diagnose(key, err))
		if lib == r.library && (errors.Is(err, about.ErrUnauthorized) || errors.Is(err, context.Canceled)) {
			r.library = nil
		}
	}
	if found != nil && r.logger != nil {
		r.logger.Verbose("Resolved license text for %s", key)
	}
	r.cache[key] = found
	return found
}

func (r *resolver) component(ctx context.Context, record *model.Record) (*Component, about.Diagnostics) {
	var diags about.Diagnostics
	refs := record.LicenseRefs()
	scores := record.Items(inventory.FieldLicenseScore)
	for i, ref := range refs {
		if i < len(scores) {
			ref.Score, _ = strconv.ParseFloat(scores[i], 64)
		}
		if ref.Text == "" {
			if lic := r.lookup(ctx, ref.Key); lic != nil {
				ref.Text = lic.Text
				if ref.Filename == "" {
					ref.Filename = lic.Filename
				}
				fill(&ref.Name, lic.Name)
				fill(&ref.URL, lic.URL)
				fill(&ref.SPDXKey, lic.SPDXKey)
			}
		}
		if ref.Text == "" {
			diags.Add(about.Error, "No license text found for key: %s", ref.Key)
		}
	}

	c := &Component{
		ID:                    record.ComponentID().String(),
		AboutFilePath:         record.AboutFilePath,
		Name:                  record.Name(),
		Version:               record.Version(),
		Description:           record.Get(model.FieldDescription),
		HomepageURL:           record.Get(model.FieldHomepageURL),
		DownloadURL:           record.Get(model.FieldDownloadURL),
		PackageURL:            record.Get(model.FieldPackageURL),
		Copyright:             record.Get(model.FieldCopyright),
		Notice:                strings.Join(record.Field(model.FieldNoticeFile).Texts(), "\n\n"),
		LicenseExpression:     record.Get(model.FieldLicenseExpression),
		SPDXLicenseExpression: record.Get(model.FieldSPDXLicenseExpression),
		Licenses:              refs,
		Redistribute:          record.Redistribute(),
		Attribute:             record.Attribute(),
		Modified:              record.Modified(),
		TrackChanges:          record.TrackChanges(),
		InternalUseOnly:       record.InternalUseOnly(),
		Fields:                record.Row(),
	}
	c.LicenseNameExpression = nameExpression(c.LicenseExpression, refs)
	return c, diags
}

func fill(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

// nameExpression replaces each key of expr with its resolved license name.
func nameExpression(expr string, refs []*license.License) string {
	if expr == "" {
		return ""
	}
	parsed, err := license.ParseExpression(expr)
	if err != nil {
		return expr
	}
	names := make(map[string]string)
	for _, ref := range refs {
		names[ref.Key] = ref.DisplayName()
	}
	return parsed.Render(func(key string) string {
		if n, ok := names[key]; ok {
			return n
		}
		return key
	})
}
