package specstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_BuildsStoreFromAllThreeSources(t *testing.T) {
	dir := t.TempDir()
	guidePath := writeFile(t, dir, "guide.md", sampleGuide)
	paramPath := writeFile(t, dir, "params.csv", sampleParamTableCSV)

	siteDir := filepath.Join(dir, "sites")
	require.NoError(t, os.Mkdir(siteDir, 0o755))
	writeFile(t, siteDir, "example-brand.yaml", sampleSiteConfigYAML)

	store, err := Load(guidePath, paramPath, siteDir)
	require.NoError(t, err)

	def, ok := store.EventDefinition("view_item")
	require.True(t, ok)
	assert.True(t, def.Required)

	params := store.ParametersOf("view_item")
	assert.Len(t, params.Parameters, 3)

	site := store.SiteOf("www.example-brand.com")
	assert.Equal(t, "Example Brand", site.SiteName)

	rendered, err := store.Render()
	require.NoError(t, err)
	assert.Contains(t, rendered, "view_item")
}

func TestLoad_MissingSourcesDegradeGracefully(t *testing.T) {
	store, err := Load("", "", "")
	require.NoError(t, err)

	_, ok := store.EventDefinition("an_event_nobody_documented")
	assert.False(t, ok)

	def, ok := store.EventDefinition("purchase")
	require.True(t, ok, "ecommerce fallback must still resolve standard GA4 events")
	assert.True(t, def.Required)
}

func TestEventDefinition_PrefersGuideOverEcommerceFallback(t *testing.T) {
	dir := t.TempDir()
	guidePath := writeFile(t, dir, "guide.md", `
## purchase
- 이벤트 이름: purchase
- 필수 여부: 선택
- 허용 페이지: ALL
`)
	store, err := Load(guidePath, "", "")
	require.NoError(t, err)

	def, ok := store.EventDefinition("purchase")
	require.True(t, ok)
	assert.False(t, def.Required, "guide's explicit optional status must win over the ecommerce fallback's required=true")
	assert.True(t, def.AllPages)
}
