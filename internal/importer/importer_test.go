package importer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/almoxarifado/almox/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeUploader struct {
	calls    int
	token    string
	filename string
	body     []byte
	result   api.ImportResult
	err      error
}

func (f *fakeUploader) ImportProducts(_ context.Context, token, filename string, r io.Reader) (api.ImportResult, error) {
	f.calls++
	f.token = token
	f.filename = filename
	f.body, _ = io.ReadAll(r)
	return f.result, f.err
}

func writeCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "produtos.csv")
	data := "sku,nome,categoria,quantidade,unidade,estoqueMinimo,localizacao,origem,observacao\n" +
		"SKU-1,Luva,EPI,12,par,2,B1,Compra,\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	return path
}

func TestImporter_DryRunDoesNotUpload(t *testing.T) {
	up := &fakeUploader{}
	res, err := New(up, nil).Run(context.Background(), "tok", writeCSV(t), true)
	require.NoError(t, err)

	assert.Equal(t, 0, up.calls)
	assert.False(t, res.Uploaded)
	assert.Len(t, res.Preview.Rows, 1)
}

func TestImporter_UploadsCSVAsXLSX(t *testing.T) {
	path := writeCSV(t)

	up := &fakeUploader{result: api.ImportResult{ImportedCount: 1}}
	res, err := New(up, nil).Run(context.Background(), "tok", path, false)
	require.NoError(t, err)

	assert.Equal(t, 1, up.calls)
	assert.Equal(t, "tok", up.token)
	assert.Equal(t, "produtos.xlsx", filepath.Base(up.filename))
	assert.True(t, res.Uploaded)
	assert.Equal(t, 1, res.Server.ImportedCount)

	f, err := excelize.OpenReader(bytes.NewReader(up.body))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, Columns, rows[0])
	require.GreaterOrEqual(t, len(rows[1]), 8)
	assert.Equal(t, []string{"SKU-1", "Luva", "EPI", "12", "par", "2", "B1", "Compra"}, rows[1][:8])

	again := Parse(rows)
	assert.Equal(t, res.Preview.Rows, again.Rows)
}

func TestImporter_UploadsXLSXUnchanged(t *testing.T) {
	data := buildXLSX(t, [][]any{
		{"sku", "nome", "categoria", "quantidade", "unidade", "estoqueMinimo", "localizacao", "origem", "observacao"},
		{"SKU-2", "Capacete", "EPI", 4, "un", 1, "C2", "Compra", ""},
	}).Bytes()
	path := filepath.Join(t.TempDir(), "produtos.xlsx")
	require.NoError(t, os.WriteFile(path, data, 0644))

	up := &fakeUploader{}
	_, err := New(up, nil).Run(context.Background(), "", path, false)
	require.NoError(t, err)

	assert.Equal(t, path, up.filename)
	assert.Equal(t, data, up.body)
}

func TestImporter_UploadError(t *testing.T) {
	up := &fakeUploader{err: &api.StatusError{Method: "POST", Path: api.ImportPath, StatusCode: 400}}
	res, err := New(up, nil).Run(context.Background(), "", writeCSV(t), false)
	require.Error(t, err)

	assert.True(t, api.IsStatus(err, 400))
	assert.False(t, res.Uploaded)
	assert.Len(t, res.Preview.Rows, 1)
}

func TestImporter_MissingFile(t *testing.T) {
	up := &fakeUploader{}
	_, err := New(up, nil).Run(context.Background(), "", filepath.Join(t.TempDir(), "nope.csv"), false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Equal(t, 0, up.calls)
}
