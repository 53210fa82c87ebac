package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"boxscorecli/internal/config"
	"boxscorecli/pkg/contracts/domain"
)

var (
	// ErrInputNotFound is returned when a period has no input file
	ErrInputNotFound = errors.New("input file not found")
	// ErrAmbiguousInput is returned when a period matches more than one file
	ErrAmbiguousInput = errors.New("ambiguous input files")
)

var (
	halfPattern         = regexp.MustCompile(config.HalfFilePattern)
	thirdQuarterPattern = regexp.MustCompile(config.ThirdQuarterFilePattern)
)

// inputExtensions lists the document formats the loader understands
var inputExtensions = map[string]bool{".json": true, ".xlsx": true}

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// PeriodPair holds the two input documents of one pipeline run
type PeriodPair struct {
	Half         FileInfo
	ThirdQuarter FileInfo
}

// Discovery provides input discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance. Relative directories
// are resolved against basePath.
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindInputFiles returns the JSON and XLSX files of dir sorted by name
func (d *Discovery) FindInputFiles(dir string) ([]FileInfo, error) {
	fullPath := d.resolve(dir)

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !inputExtensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}

// FindPeriodPair finds the first-half and third-quarter documents in dir.
// Each period must match exactly one file; a file name matching both periods
// is ambiguous.
func (d *Discovery) FindPeriodPair(dir string) (*PeriodPair, error) {
	files, err := d.FindInputFiles(dir)
	if err != nil {
		return nil, err
	}

	var half, q3 []FileInfo
	for _, f := range files {
		isHalf := halfPattern.MatchString(f.Name)
		isQ3 := thirdQuarterPattern.MatchString(f.Name)
		switch {
		case isHalf && isQ3:
			return nil, fmt.Errorf("%w: %s matches both periods", ErrAmbiguousInput, f.Name)
		case isHalf:
			half = append(half, f)
		case isQ3:
			q3 = append(q3, f)
		}
	}

	h, err := single(domain.PeriodHalf, half, d.resolve(dir))
	if err != nil {
		return nil, err
	}
	q, err := single(domain.PeriodThirdQuarter, q3, d.resolve(dir))
	if err != nil {
		return nil, err
	}

	return &PeriodPair{Half: h, ThirdQuarter: q}, nil
}

func single(period domain.Period, files []FileInfo, dir string) (FileInfo, error) {
	switch len(files) {
	case 0:
		return FileInfo{}, fmt.Errorf("%w: no %s document in %s", ErrInputNotFound, period, dir)
	case 1:
		return files[0], nil
	default:
		names := make([]string, len(files))
		for i, f := range files {
			names[i] = f.Name
		}
		return FileInfo{}, fmt.Errorf("%w: %s matches %s", ErrAmbiguousInput, period, strings.Join(names, ", "))
	}
}

func (d *Discovery) resolve(dir string) string {
	if filepath.IsAbs(dir) || d.basePath == "" {
		return dir
	}
	return filepath.Join(d.basePath, dir)
}
