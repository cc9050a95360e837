// Package attrib renders attribution documents from ABOUT records.
//
// Records are turned into a template Context: one Component per record with
// resolved license texts and a license-name expression, plus the unique
// licenses of all components. Built-in templates are embedded in the binary;
// user templates ending in .html or .htm are executed with html/template and
// all others with text/template. Both get the sprig function library plus
// multiSort and uniqueTogether.
package attrib
