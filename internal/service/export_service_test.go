package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/douradinams/Douradinams/internal/models"
	appErrors "github.com/douradinams/Douradinams/pkg/errors"
)

func workbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestExportFormats(t *testing.T) {
	ctx := context.Background()
	students, schools, _, _ := newRepos()
	svc := NewExportService(students, schools, nil, nil, nil)

	name, cpf, school := "Ana Silva", "123.456.789-00", "Colégio Integração"
	_, err := students.Save(ctx, models.StudentPatch{Name: &name, CPF: &cpf, School: &school})
	require.NoError(t, err)

	csvFile, err := svc.Export(ctx, ExportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "estudantes.csv", csvFile.Filename)
	assert.Equal(t, "text/csv", csvFile.ContentType)
	assert.Equal(t, "Nome,CPF,Escola\nAna Silva,123.456.789-00,Colégio Integração", string(csvFile.Body))

	xlsxFile, err := svc.Export(ctx, ExportFormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, "estudantes.xlsx", xlsxFile.Filename)
	assert.NotEmpty(t, xlsxFile.Body)

	pdfFile, err := svc.Export(ctx, ExportFormatPDF)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdfFile.Body, []byte("%PDF")))

	_, err = svc.Export(ctx, "doc")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestImportRoster(t *testing.T) {
	ctx := context.Background()
	students, schools, _, _ := newRepos()
	svc := NewExportService(students, schools, nil, nil, nil)

	existingCPF, existingBirth := "999", "2011-01-01"
	_, err := students.Save(ctx, models.StudentPatch{CPF: &existingCPF, BirthDate: &existingBirth})
	require.NoError(t, err)

	buf := workbook(t, [][]interface{}{
		{"Nome", "CPF", "Data de Nascimento", "Escola", "Tipo Sanguíneo", "Necessidades Especiais"},
		{"Ana Silva", "123.456.789-00", "2010-05-01", "", "", "Sim"},
		{"Bruno", "555", "01/02/2012", "Escola Estadual Modelo", "A-", ""},
		{"Sem CPF", "", "2010-05-01"},
		{"Data ruim", "777", "ontem"},
		{"Repetido", "999", "2011-01-01"},
		{"Ana de novo", "123.456.789-00", "2010-05-01"},
	})

	result, err := svc.Import(ctx, buf)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	require.Len(t, result.Skipped, 4)
	assert.Equal(t, 4, result.Skipped[0].Row)

	ana := result.Students[0]
	assert.Equal(t, "Colégio Integração", ana.School)
	assert.Equal(t, "O+", ana.BloodType)
	assert.True(t, ana.SpecialNeeds)
	assert.Equal(t, models.StudentStatusPending, ana.Status)
	assert.NotEmpty(t, ana.RegistrationNumber)

	bruno := result.Students[1]
	assert.Equal(t, "2012-02-01", bruno.BirthDate)
	assert.Equal(t, "A-", bruno.BloodType)

	all, err := students.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestImportReportsSheetRowsAcrossBlankLines(t *testing.T) {
	students, schools, _, _ := newRepos()
	svc := NewExportService(students, schools, nil, nil, nil)

	buf := workbook(t, [][]interface{}{
		{"Nome", "CPF", "Data de Nascimento"},
		{},
		{"Sem CPF", "", "2010-05-01"},
		{},
		{},
		{"Data ruim", "777", "ontem"},
	})

	result, err := svc.Import(context.Background(), buf)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Imported)
	require.Len(t, result.Skipped, 2)
	assert.Equal(t, 3, result.Skipped[0].Row)
	assert.Equal(t, 6, result.Skipped[1].Row)
}

func TestImportRequiresColumns(t *testing.T) {
	students, schools, _, _ := newRepos()
	svc := NewExportService(students, schools, nil, nil, nil)

	_, err := svc.Import(context.Background(), workbook(t, [][]interface{}{{"Nome", "Escola"}, {"Ana", "X"}}))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Import(context.Background(), bytes.NewReader([]byte("nope")))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "tiposanguineo", normalizeHeader(" Tipo Sanguíneo "))
	assert.Equal(t, "responsaveis", normalizeHeader("Responsáveis"))
	assert.Equal(t, "emergencyphone", normalizeHeader("emergency_phone"))
}
