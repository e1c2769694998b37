package files_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/filevault/internal/files"
)

func TestParentRef_JSON(t *testing.T) {
	t.Parallel()

	decode := []struct {
		in   string
		want files.ParentRef
	}{
		{`0`, files.Root},
		{`"0"`, files.Root},
		{`""`, files.Root},
		{`null`, files.Root},
		{`"5f1e7cda04a394508232559d"`, "5f1e7cda04a394508232559d"},
		{`42`, "42"},
	}
	for _, tt := range decode {
		var got files.ParentRef
		require.NoError(t, json.Unmarshal([]byte(tt.in), &got), tt.in)
		require.Equal(t, tt.want, got, tt.in)
	}

	var bad files.ParentRef
	require.Error(t, json.Unmarshal([]byte(`true`), &bad))
}

func TestFile_JSON(t *testing.T) {
	t.Parallel()

	folder := files.File{ID: "a", UserID: "u", Name: "docs", Type: files.TypeFolder}
	data, err := json.Marshal(folder)
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"a","userId":"u","name":"docs","type":"folder","isPublic":false,"parentId":0,"localPath":null}`, string(data))

	file := files.File{ID: "b", UserID: "u", Name: "a.txt", Type: files.TypeFile, IsPublic: true, ParentID: "a", LocalPath: strPtr("/tmp/x")}
	data, err = json.Marshal(file)
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"b","userId":"u","name":"a.txt","type":"file","isPublic":true,"parentId":"a","localPath":"/tmp/x"}`, string(data))
}

func TestType_Valid(t *testing.T) {
	t.Parallel()

	for _, typ := range []files.Type{files.TypeFolder, files.TypeFile, files.TypeImage} {
		require.True(t, typ.Valid(), typ)
	}
	for _, typ := range []files.Type{"", "video", "Folder"} {
		require.False(t, typ.Valid(), typ)
	}
}
