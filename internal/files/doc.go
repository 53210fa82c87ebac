// Package files locates pipeline inputs and outputs on disk.
//
// Discovery finds the first-half and third-quarter documents of a run in a
// directory. A document belongs to a period when its file name carries the
// period token (half, 1h, first_half for the first half; 3q, q3,
// third_quarter for the third quarter) and its extension is .json or .xlsx.
//
// Manager resolves relative input and output paths against the configured
// pipeline directories.
//
// Example usage:
//
//	pair, err := files.NewDiscovery("").FindPeriodPair("data/input")
//	if err != nil {
//	    return err
//	}
//	half, q3, err := dataprocessing.LoadFiles(ctx, pair.Half.Path, pair.ThirdQuarter.Path)
package files
