package repo_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blackwell-systems/assetctl/internal/library"
	"github.com/blackwell-systems/assetctl/internal/repo"
	"github.com/blackwell-systems/assetctl/internal/uid"
)

func newTestRepo(t *testing.T) (*repo.Repository, string, string) {
	t.Helper()
	root := t.TempDir()
	cacheDir := t.TempDir()
	r := repo.New(root, cacheDir, nil)
	if err := r.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if err := r.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return r, root, cacheDir
}

func TestInitialize_Idempotent(t *testing.T) {
	root := t.TempDir()
	cacheDir := t.TempDir()
	r := repo.New(root, cacheDir, nil)

	if err := r.Initialize(); err != nil {
		t.Fatalf("first Initialize: %v", err)
	}
	metaPath := filepath.Join(root, "metadata.json")
	if _, err := os.Stat(metaPath); err != nil {
		t.Fatalf("metadata.json not created: %v", err)
	}

	// Seed real content, re-initialize, content must survive.
	if err := r.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	m := r.GetLibraryMetadata()
	m.AddFolder(library.NewFolder("keep me"))
	if err := r.SaveLibraryMetadata(m); err != nil {
		t.Fatalf("SaveLibraryMetadata: %v", err)
	}

	if err := r.Initialize(); err != nil {
		t.Fatalf("second Initialize: %v", err)
	}
	data, err := os.ReadFile(metaPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "keep me") {
		t.Error("Initialize overwrote existing metadata")
	}
}

func TestSaveAsset_AndGet(t *testing.T) {
	r, root, _ := newTestRepo(t)

	a := library.NewAsset("pack", "zip", 2048)
	if err := r.SaveAsset(a); err != nil {
		t.Fatalf("SaveAsset: %v", err)
	}

	got, ok := r.GetAsset(a.ID)
	if !ok || got.Name != "pack" {
		t.Fatalf("GetAsset = %+v, %v", got, ok)
	}
	// The per-asset record is on disk.
	if _, err := os.Stat(filepath.Join(root, "Assets", a.ID.String(), "metadata.json")); err != nil {
		t.Errorf("per-asset metadata not written: %v", err)
	}
}

func TestCacheSurvivability(t *testing.T) {
	r, root, cacheDir := newTestRepo(t)

	a := library.NewAsset("one", "zip", 1).WithTags([]string{"x"})
	b := library.NewAsset("two", "fbx", 2)
	if err := r.SaveAssets([]library.Asset{a, b}); err != nil {
		t.Fatalf("SaveAssets: %v", err)
	}

	cachePath := filepath.Join(cacheDir, "assetManager_cache.json")
	if err := os.Remove(cachePath); err != nil {
		t.Fatalf("removing cache: %v", err)
	}

	fresh := repo.New(root, cacheDir, nil)
	if err := fresh.Load(); err != nil {
		t.Fatalf("Load after cache delete: %v", err)
	}
	assets := fresh.ListAssets()
	if len(assets) != 2 {
		t.Fatalf("rebuilt %d assets, want 2", len(assets))
	}
	got, ok := fresh.GetAsset(a.ID)
	if !ok || got.Name != "one" || len(got.Tags) != 1 {
		t.Errorf("rebuilt asset mismatch: %+v", got)
	}
	// Rebuild re-persists the cache.
	if _, err := os.Stat(cachePath); err != nil {
		t.Errorf("cache not re-persisted after rebuild: %v", err)
	}
}

func TestSetScanWorkers_RescanStillComplete(t *testing.T) {
	r, root, cacheDir := newTestRepo(t)

	a := library.NewAsset("one", "zip", 1)
	b := library.NewAsset("two", "fbx", 2)
	if err := r.SaveAssets([]library.Asset{a, b}); err != nil {
		t.Fatalf("SaveAssets: %v", err)
	}
	if err := os.Remove(filepath.Join(cacheDir, "assetManager_cache.json")); err != nil {
		t.Fatalf("removing cache: %v", err)
	}

	fresh := repo.New(root, cacheDir, nil)
	fresh.SetScanWorkers(1)
	fresh.SetScanWorkers(0) // below one keeps the current value
	if err := fresh.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := len(fresh.ListAssets()); got != 2 {
		t.Errorf("rebuilt %d assets, want 2", got)
	}
}

func TestLoad_CorruptCacheFallsBack(t *testing.T) {
	r, root, cacheDir := newTestRepo(t)

	a := library.NewAsset("pack", "zip", 1)
	if err := r.SaveAsset(a); err != nil {
		t.Fatalf("SaveAsset: %v", err)
	}

	cachePath := filepath.Join(cacheDir, "assetManager_cache.json")
	if err := os.WriteFile(cachePath, []byte("{broken json"), 0644); err != nil {
		t.Fatal(err)
	}

	fresh := repo.New(root, cacheDir, nil)
	if err := fresh.Load(); err != nil {
		t.Fatalf("Load with corrupt cache: %v", err)
	}
	if _, ok := fresh.GetAsset(a.ID); !ok {
		t.Error("asset lost after corrupt-cache rescan")
	}
}

func TestLoad_SkipsUnreadableAssetRecord(t *testing.T) {
	r, root, cacheDir := newTestRepo(t)

	good := library.NewAsset("good", "zip", 1)
	if err := r.SaveAsset(good); err != nil {
		t.Fatalf("SaveAsset: %v", err)
	}
	// Hand-drop a broken asset dir, then force a rescan.
	badDir := filepath.Join(root, "Assets", uid.New().String())
	if err := os.MkdirAll(badDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(badDir, "metadata.json"), []byte("nope"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(filepath.Join(cacheDir, "assetManager_cache.json")); err != nil {
		t.Fatal(err)
	}

	fresh := repo.New(root, cacheDir, nil)
	if err := fresh.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(fresh.ListAssets()) != 1 {
		t.Errorf("expected the one good asset, got %d", len(fresh.ListAssets()))
	}
}

func TestDeleteAsset(t *testing.T) {
	r, root, _ := newTestRepo(t)

	a := library.NewAsset("pack", "zip", 1)
	if err := r.SaveAsset(a); err != nil {
		t.Fatalf("SaveAsset: %v", err)
	}
	if err := r.DeleteAsset(a.ID); err != nil {
		t.Fatalf("DeleteAsset: %v", err)
	}
	if _, ok := r.GetAsset(a.ID); ok {
		t.Error("asset still cached after delete")
	}
	if _, err := os.Stat(filepath.Join(root, "Assets", a.ID.String())); !os.IsNotExist(err) {
		t.Error("asset dir still on disk after delete")
	}
	// Deleting again is not an error.
	if err := r.DeleteAsset(a.ID); err != nil {
		t.Errorf("second DeleteAsset: %v", err)
	}
}

func TestNotifications_Batched(t *testing.T) {
	r, _, _ := newTestRepo(t)

	var events []repo.Change
	r.OnChange(func(c repo.Change) { events = append(events, c) })

	batch := []library.Asset{
		library.NewAsset("a", "zip", 1),
		library.NewAsset("b", "zip", 2),
	}
	if err := r.SaveAssets(batch); err != nil {
		t.Fatalf("SaveAssets: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 batched event, got %d", len(events))
	}
	if events[0].Kind != repo.AssetsChanged || len(events[0].Assets) != 2 {
		t.Errorf("event = %+v", events[0])
	}

	events = nil
	m := r.GetLibraryMetadata()
	m.AddFolder(library.NewFolder("f"))
	if err := r.SaveLibraryMetadata(m); err != nil {
		t.Fatalf("SaveLibraryMetadata: %v", err)
	}
	if len(events) != 1 || events[0].Kind != repo.LibraryChanged {
		t.Errorf("expected one LibraryChanged event, got %+v", events)
	}
}

func TestGetLibraryMetadata_ReturnsSnapshot(t *testing.T) {
	r, _, _ := newTestRepo(t)

	m := r.GetLibraryMetadata()
	m.AddFolder(library.NewFolder("staged"))
	// Unsaved mutation of the snapshot must not leak into the repository.
	if len(r.GetLibraryMetadata().FolderList) != 0 {
		t.Error("snapshot mutation leaked into repository state")
	}
}

func TestContentFiles(t *testing.T) {
	r, root, _ := newTestRepo(t)

	a := library.NewAsset("pack", "zip", 1)
	if err := r.SaveAsset(a); err != nil {
		t.Fatalf("SaveAsset: %v", err)
	}
	dir := filepath.Join(root, "Assets", a.ID.String())
	for _, name := range []string{"pack.zip", "readme.txt", "thumbnail.png"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := r.ContentFiles(a.ID)
	if err != nil {
		t.Fatalf("ContentFiles: %v", err)
	}
	if len(files) != 2 || files[0] != "pack.zip" || files[1] != "readme.txt" {
		t.Errorf("ContentFiles = %v", files)
	}

	// Absent asset: empty listing, no error.
	files, err = r.ContentFiles(uid.New())
	if err != nil || files != nil {
		t.Errorf("ContentFiles(absent) = %v, %v", files, err)
	}
}

func TestStoreContent(t *testing.T) {
	r, _, _ := newTestRepo(t)

	a := library.NewAsset("pack", "zip", 1)
	if err := r.SaveAsset(a); err != nil {
		t.Fatal(err)
	}
	if err := r.StoreContent(a.ID, "pack.zip", strings.NewReader("bytes")); err != nil {
		t.Fatalf("StoreContent: %v", err)
	}
	files, err := r.ContentFiles(a.ID)
	if err != nil || len(files) != 1 || files[0] != "pack.zip" {
		t.Errorf("ContentFiles = %v, %v", files, err)
	}

	// Reserved and path-escaping names are refused.
	for _, bad := range []string{"", "metadata.json", "thumbnail.png", "../evil"} {
		if err := r.StoreContent(a.ID, bad, strings.NewReader("x")); err == nil {
			t.Errorf("StoreContent accepted %q", bad)
		}
	}
}

func TestTags_AcrossAssetsAndFolders(t *testing.T) {
	r, _, _ := newTestRepo(t)

	if err := r.SaveAsset(library.NewAsset("a", "zip", 1).WithTags([]string{"props", "avatar"})); err != nil {
		t.Fatal(err)
	}
	m := r.GetLibraryMetadata()
	f := library.NewFolder("f")
	f.Tags = []string{"scenes"}
	m.AddFolder(f)
	if err := r.SaveLibraryMetadata(m); err != nil {
		t.Fatal(err)
	}

	got := r.Tags()
	want := []string{"avatar", "props", "scenes"}
	if len(got) != len(want) {
		t.Fatalf("Tags = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Tags = %v, want %v", got, want)
		}
	}
}

func TestThumbnails(t *testing.T) {
	r, _, _ := newTestRepo(t)

	a := library.NewAsset("pack", "zip", 1)
	if err := r.SaveAsset(a); err != nil {
		t.Fatal(err)
	}

	if _, ok := r.AssetThumbnail(a.ID); ok {
		t.Error("thumbnail reported present before set")
	}
	if err := r.SetAssetThumbnail(a.ID, strings.NewReader("png-bytes")); err != nil {
		t.Fatalf("SetAssetThumbnail: %v", err)
	}
	path, ok := r.AssetThumbnail(a.ID)
	if !ok {
		t.Fatal("thumbnail missing after set")
	}
	data, _ := os.ReadFile(path)
	if string(data) != "png-bytes" {
		t.Errorf("thumbnail content = %q", data)
	}

	folderID := uid.New()
	if _, ok := r.FolderIcon(folderID); ok {
		t.Error("folder icon reported present before set")
	}
	if err := r.SetFolderIcon(folderID, strings.NewReader("icon")); err != nil {
		t.Fatalf("SetFolderIcon: %v", err)
	}
	if _, ok := r.FolderIcon(folderID); !ok {
		t.Error("folder icon missing after set")
	}
}

func TestEnsureCatalogFolder_LiveRepository(t *testing.T) {
	r, _, _ := newTestRepo(t)

	var changes []repo.Change
	r.OnChange(func(c repo.Change) { changes = append(changes, c) })

	spec := library.CatalogFolderSpec{ShopDomain: "shop.example.com", Identifier: "42", DisplayName: "Item"}
	id1, err := r.EnsureCatalogFolder(spec)
	if err != nil {
		t.Fatalf("EnsureCatalogFolder: %v", err)
	}
	id2, err := r.EnsureCatalogFolder(spec)
	if err != nil {
		t.Fatalf("EnsureCatalogFolder (second): %v", err)
	}
	if id1 != id2 {
		t.Error("live ensure-folder not idempotent")
	}
	if r.GetLibraryMetadata().GetFolder(id1) == nil {
		t.Error("folder not persisted")
	}
	// The identical second call saves and notifies nothing.
	if len(changes) != 1 {
		t.Errorf("got %d notifications, want 1", len(changes))
	}

	// A real patch saves again.
	spec.DisplayName = "Renamed"
	if _, err := r.EnsureCatalogFolder(spec); err != nil {
		t.Fatalf("EnsureCatalogFolder (patch): %v", err)
	}
	if len(changes) != 2 {
		t.Errorf("got %d notifications after patch, want 2", len(changes))
	}
	if got := r.GetLibraryMetadata().GetFolder(id1).Name; got != "Renamed" {
		t.Errorf("patched name = %q", got)
	}
}
