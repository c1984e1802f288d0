package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/douradinams/Douradinams/internal/models"
	"github.com/douradinams/Douradinams/internal/repository"
	appErrors "github.com/douradinams/Douradinams/pkg/errors"
	"github.com/douradinams/Douradinams/pkg/export"
)

// ExportFormat selects the roster document type.
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
	ExportFormatPDF  ExportFormat = "pdf"
)

// ExportFile is a rendered document ready to download.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

type rosterRepository interface {
	List(ctx context.Context) ([]models.Student, error)
	SaveAll(ctx context.Context, patches []models.StudentPatch) ([]models.Student, error)
	ExportCSV(ctx context.Context) ([]byte, error)
}

type xlsxRenderer interface {
	Render(data export.Table) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Table, title string) ([]byte, error)
}

// ExportService exports the student roster and imports roster spreadsheets.
type ExportService struct {
	students rosterRepository
	schools  schoolLister
	xlsx     xlsxRenderer
	pdf      pdfRenderer
	logger   *zap.Logger
}

// NewExportService constructs an ExportService. Nil renderers get defaults.
func NewExportService(students rosterRepository, schools schoolLister, logger *zap.Logger, xlsx xlsxRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if xlsx == nil {
		xlsx = export.NewXLSXExporter("Estudantes")
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{students: students, schools: schools, xlsx: xlsx, pdf: pdf, logger: logger}
}

// Export renders the roster. CSV keeps the legacy unescaped layout.
func (s *ExportService) Export(ctx context.Context, format ExportFormat) (*ExportFile, error) {
	switch format {
	case ExportFormatCSV, "":
		body, err := s.students.ExportCSV(ctx)
		if err != nil {
			return nil, s.internal(err, "failed to export csv")
		}
		return &ExportFile{Filename: "estudantes.csv", ContentType: "text/csv", Body: body}, nil
	case ExportFormatXLSX:
		students, err := s.students.List(ctx)
		if err != nil {
			return nil, s.internal(err, "failed to load students")
		}
		body, err := s.xlsx.Render(repository.RosterTable(students))
		if err != nil {
			return nil, s.internal(err, "failed to render xlsx")
		}
		return &ExportFile{
			Filename:    "estudantes.xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Body:        body,
		}, nil
	case ExportFormatPDF:
		students, err := s.students.List(ctx)
		if err != nil {
			return nil, s.internal(err, "failed to load students")
		}
		body, err := s.pdf.Render(repository.RosterTable(students), "Estudantes")
		if err != nil {
			return nil, s.internal(err, "failed to render pdf")
		}
		return &ExportFile{Filename: "estudantes.pdf", ContentType: "application/pdf", Body: body}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

// Import reads the first sheet of an XLSX roster and registers every valid
// row in one write. Rows missing name, CPF or birth date, or whose CPF and
// birth date are already registered, are skipped and reported.
func (s *ExportService) Import(ctx context.Context, r io.Reader) (*models.ImportResult, error) {
	table, err := export.ReadXLSX(r)
	if err != nil {
		if errors.Is(err, export.ErrEmptyWorkbook) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "workbook has no rows")
		}
		return nil, appErrors.ErrValidation.WithCause(err, "invalid workbook")
	}

	columns := mapImportColumns(table.Headers)
	for _, required := range []string{fieldName, fieldCPF, fieldBirthDate} {
		if _, ok := columns[required]; !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("missing column %q", required))
		}
	}

	existing, err := s.students.List(ctx)
	if err != nil {
		return nil, s.internal(err, "failed to load students")
	}
	seen := make(map[string]struct{}, len(existing))
	for _, st := range existing {
		seen[st.CPF+"|"+st.BirthDate] = struct{}{}
	}

	defaultSchool := ""
	if schools, err := s.schools.List(ctx); err == nil && len(schools) > 0 {
		defaultSchool = schools[0].Name
	} else if err != nil {
		s.logger.Warn("load schools for import", zap.Error(err))
	}

	result := &models.ImportResult{Skipped: []models.ImportIssue{}, Students: []models.Student{}}
	patches := make([]models.StudentPatch, 0, len(table.Rows))
	for i, row := range table.Rows {
		rowNum := table.RowNumber(i)
		get := func(field string) string {
			if idx, ok := columns[field]; ok && idx < len(row) {
				return row[idx]
			}
			return ""
		}

		req := models.CreateStudentRequest{
			Name:           get(fieldName),
			CPF:            get(fieldCPF),
			Parents:        get(fieldParents),
			Phone:          get(fieldPhone),
			EmergencyPhone: get(fieldEmergencyPhone),
			BloodType:      get(fieldBloodType),
			SpecialNeeds:   parseYes(get(fieldSpecialNeeds)),
			School:         get(fieldSchool),
			Status:         models.StudentStatusPending,
		}
		if req.Name == "" || req.CPF == "" {
			result.Skipped = append(result.Skipped, models.ImportIssue{Row: rowNum, Reason: "name and cpf are required"})
			continue
		}
		birth, ok := parseBirthDate(get(fieldBirthDate))
		if !ok {
			result.Skipped = append(result.Skipped, models.ImportIssue{Row: rowNum, Reason: "invalid birth date"})
			continue
		}
		req.BirthDate = birth

		key := req.CPF + "|" + req.BirthDate
		if _, dup := seen[key]; dup {
			result.Skipped = append(result.Skipped, models.ImportIssue{Row: rowNum, Reason: "student already registered"})
			continue
		}
		seen[key] = struct{}{}

		if req.BloodType == "" {
			req.BloodType = models.DefaultBloodType
		}
		if req.School == "" {
			req.School = defaultSchool
		}
		patches = append(patches, createPatch(req))
	}

	if len(patches) > 0 {
		saved, err := s.students.SaveAll(ctx, patches)
		if err != nil {
			return nil, s.internal(err, "failed to save imported students")
		}
		result.Students = saved
	}
	result.Imported = len(result.Students)
	s.logger.Info("roster imported", zap.Int("imported", result.Imported), zap.Int("skipped", len(result.Skipped)))
	return result, nil
}

func (s *ExportService) internal(err error, msg string) error {
	s.logger.Error(msg, zap.Error(err))
	return appErrors.ErrInternal.WithCause(err, msg)
}

const (
	fieldName           = "name"
	fieldCPF            = "cpf"
	fieldBirthDate      = "birthDate"
	fieldParents        = "parents"
	fieldPhone          = "phone"
	fieldEmergencyPhone = "emergencyPhone"
	fieldBloodType      = "bloodType"
	fieldSpecialNeeds   = "specialNeeds"
	fieldSchool         = "school"
)

var importHeaderAliases = map[string]string{
	"nome":                  fieldName,
	"name":                  fieldName,
	"cpf":                   fieldCPF,
	"nascimento":            fieldBirthDate,
	"datadenascimento":      fieldBirthDate,
	"datanascimento":        fieldBirthDate,
	"birthdate":             fieldBirthDate,
	"responsaveis":          fieldParents,
	"responsavel":           fieldParents,
	"pais":                  fieldParents,
	"parents":               fieldParents,
	"telefone":              fieldPhone,
	"phone":                 fieldPhone,
	"emergencia":            fieldEmergencyPhone,
	"telefonedeemergencia":  fieldEmergencyPhone,
	"emergencyphone":        fieldEmergencyPhone,
	"tiposanguineo":         fieldBloodType,
	"bloodtype":             fieldBloodType,
	"necessidadesespeciais": fieldSpecialNeeds,
	"specialneeds":          fieldSpecialNeeds,
	"escola":                fieldSchool,
	"school":                fieldSchool,
}

// mapImportColumns resolves header names to field indexes; first match wins.
func mapImportColumns(headers []string) map[string]int {
	columns := make(map[string]int, len(headers))
	for i, header := range headers {
		field, ok := importHeaderAliases[normalizeHeader(header)]
		if !ok {
			continue
		}
		if _, taken := columns[field]; !taken {
			columns[field] = i
		}
	}
	return columns
}

func normalizeHeader(header string) string {
	// chains carry state, so each call builds its own
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(stripMarks, header)
	if err != nil {
		plain = header
	}
	var b strings.Builder
	for _, r := range strings.ToLower(plain) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

var birthDateLayouts = []string{"2006-01-02", "02/01/2006", "2006/01/02"}

func parseBirthDate(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range birthDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

func parseYes(raw string) bool {
	switch normalizeHeader(raw) {
	case "sim", "s", "yes", "y", "true", "1", "x":
		return true
	default:
		return false
	}
}
