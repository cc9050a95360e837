// Package loader loads ABOUT records from any supported input location:
// an ABOUT file, a directory tree or zip archive of ABOUT files, a .csv,
// .json or .xlsx inventory, or a ScanCode JSON scan.
//
// Inventory and scan rows are hydrated into records the same way gen does,
// then validated against the input's directory with missing resources
// reported as INFO only.
package loader
