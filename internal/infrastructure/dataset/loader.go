package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/nutriswap/backend/internal/domain"
)

// Column positions in the three tables
const (
	groupIDCol   = 0
	groupNameCol = 2

	foodIDCol      = 0
	foodGroupIDCol = 2
	foodNameCol    = 4

	amountFoodIDCol = 0
	amountCodeCol   = 1
	amountValueCol  = 2
)

// Files names the three tables of the nutrient dataset
type Files struct {
	Groups    string
	Foods     string
	Nutrients string
}

// Catalog is the loaded dataset. It is never mutated after Load returns.
type Catalog struct {
	Groups      map[int]string
	IDToName    map[int]string
	NameToID    map[string]int
	NameToGroup map[string]int
	Amounts     map[int]map[int]float64
	Entries     []domain.CatalogEntry

	// Profiles is keyed by lower-cased normalized name
	Profiles map[string]domain.NutrientProfile
}

func newCatalog() *Catalog {
	return &Catalog{
		Groups:      make(map[int]string),
		IDToName:    make(map[int]string),
		NameToID:    make(map[string]int),
		NameToGroup: make(map[string]int),
		Amounts:     make(map[int]map[int]float64),
		Profiles:    make(map[string]domain.NutrientProfile),
	}
}

// GroupName returns the food-group display name of an ingredient key
func (c *Catalog) GroupName(key string) (string, bool) {
	groupID, ok := c.NameToGroup[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return "", false
	}
	name, ok := c.Groups[groupID]
	return name, ok
}

// Loader reads the flat-file dataset
type Loader struct {
	files  Files
	logger *zap.Logger
}

// NewLoader creates a loader for the given files
func NewLoader(files Files, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		files:  files,
		logger: logger.Named("dataset"),
	}
}

// Load reads groups, foods and nutrient amounts and assembles one profile per food.
// Missing or unreadable files are logged and skipped; Load always returns a catalog.
func (l *Loader) Load() *Catalog {
	catalog := newCatalog()

	if err := l.loadGroups(catalog); err != nil {
		l.logger.Warn("food groups not loaded", zap.String("file", l.files.Groups), zap.Error(err))
	}
	if err := l.loadFoods(catalog); err != nil {
		l.logger.Warn("food catalog not loaded", zap.String("file", l.files.Foods), zap.Error(err))
	}
	if err := l.loadAmounts(catalog); err != nil {
		l.logger.Warn("nutrient amounts not loaded", zap.String("file", l.files.Nutrients), zap.Error(err))
	}

	l.buildProfiles(catalog)

	l.logger.Info("dataset loaded",
		zap.Int("groups", len(catalog.Groups)),
		zap.Int("foods", len(catalog.IDToName)),
		zap.Int("foods_with_nutrients", len(catalog.Amounts)),
		zap.Int("profiles", len(catalog.Profiles)),
	)

	return catalog
}

func (l *Loader) loadGroups(catalog *Catalog) error {
	return l.eachRow(l.files.Groups, func(row []string) {
		if len(row) <= groupNameCol {
			return
		}
		id, err := parseID(row[groupIDCol])
		if err != nil {
			return
		}
		catalog.Groups[id] = strings.TrimSpace(row[groupNameCol])
	})
}

func (l *Loader) loadFoods(catalog *Catalog) error {
	return l.eachRow(l.files.Foods, func(row []string) {
		if len(row) <= foodNameCol {
			return
		}
		id, err := parseID(row[foodIDCol])
		if err != nil {
			return
		}
		groupID, err := parseID(row[foodGroupIDCol])
		if err != nil {
			return
		}
		name := NormalizeName(row[foodNameCol])
		if name == "" {
			return
		}
		key := strings.ToLower(name)

		catalog.IDToName[id] = name
		if _, exists := catalog.NameToID[key]; !exists {
			catalog.NameToID[key] = id
			catalog.NameToGroup[key] = groupID
		}
		catalog.Entries = append(catalog.Entries, domain.CatalogEntry{
			ID:      id,
			Name:    name,
			GroupID: groupID,
		})
	})
}

func (l *Loader) loadAmounts(catalog *Catalog) error {
	skipped := 0
	err := l.eachRow(l.files.Nutrients, func(row []string) {
		if len(row) <= amountValueCol {
			skipped++
			return
		}
		foodID, err := parseID(row[amountFoodIDCol])
		if err != nil {
			skipped++
			return
		}
		code, err := parseID(row[amountCodeCol])
		if err != nil {
			skipped++
			return
		}
		value, ok := parseAmount(row[amountValueCol])
		if !ok {
			skipped++
			return
		}

		codes, exists := catalog.Amounts[foodID]
		if !exists {
			codes = make(map[int]float64)
			catalog.Amounts[foodID] = codes
		}
		codes[code] = value
	})
	if skipped > 0 {
		l.logger.Debug("skipped nutrient rows", zap.Int("rows", skipped))
	}
	return err
}

// buildProfiles keys profiles by name; when several foods normalize to the
// same name, the first one in catalog order wins.
func (l *Loader) buildProfiles(catalog *Catalog) {
	for _, entry := range catalog.Entries {
		codes, ok := catalog.Amounts[entry.ID]
		if !ok || len(codes) == 0 {
			continue
		}
		key := strings.ToLower(entry.Name)
		if _, exists := catalog.Profiles[key]; exists {
			continue
		}
		catalog.Profiles[key] = MapToProfile(codes)
	}
}

// eachRow streams a comma-delimited file, skipping the header row and
// rows the CSV reader cannot parse.
func (l *Loader) eachRow(path string, fn func(row []string)) error {
	if path == "" {
		return errors.New("no file configured")
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header := true
	for {
		row, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				l.logger.Debug("skipping malformed row", zap.String("file", path), zap.Error(err))
				continue
			}
			return fmt.Errorf("read %s: %w", path, err)
		}
		if header {
			header = false
			continue
		}
		fn(row)
	}
}

func parseID(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

// parseAmount accepts positive numeric values only; empty, zero, negative and
// non-numeric fields are rejected.
func parseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
