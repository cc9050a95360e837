// Package inventory reads and writes tabular inventories of components:
// CSV, JSON and XLSX files with one row per component and one column per
// field. ScanCode JSON scans can be read as inventories too.
package inventory
