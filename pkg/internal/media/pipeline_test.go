package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yeisme/relicvault/pkg/configs"
	"github.com/yeisme/relicvault/pkg/internal/model"
	fsc "github.com/yeisme/relicvault/pkg/internal/storage/fs"
)

type testEnv struct {
	db     *gorm.DB
	fs     *fsc.Client
	codec  *PathCodec
	store  *AssetStore
	stager *Stager
	syncer *Synchronizer
	reaper *Reaper
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "media.db") + "?_pragma=busy_timeout(10000)"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(&model.MediaAsset{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	fs, err := fsc.NewAt(t.TempDir())
	if err != nil {
		t.Fatalf("init media tree: %v", err)
	}

	cfg := &configs.MediaConfig{
		StagingDir:       "media/temporary",
		DurableDir:       "media/synced",
		PublicPrefix:     "/backend/protected_media",
		ThumbnailWidth:   64,
		ThumbnailHeight:  48,
		ThumbnailQuality: 85,
	}

	codec := NewPathCodec(cfg)
	store := NewAssetStore(db)
	proc := NewProcessor(fs, cfg)

	return &testEnv{
		db:     db,
		fs:     fs,
		codec:  codec,
		store:  store,
		stager: NewStager(store, fs, codec),
		syncer: NewSynchronizer(store, fs, proc, codec),
		reaper: NewReaper(store, fs, codec),
	}
}

// jpegBytes 生成一张可解码的 JPEG 测试图.
func jpegBytes(t *testing.T) []byte {
	t.Helper()

	img := imaging.New(320, 240, color.NRGBA{R: 200, G: 120, B: 40, A: 255})

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}

	return buf.Bytes()
}

// pngBytes 生成一张可解码的 PNG 测试图.
func pngBytes(t *testing.T) []byte {
	t.Helper()

	img := imaging.New(100, 80, color.NRGBA{R: 10, G: 160, B: 90, A: 255})

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		t.Fatalf("encode png: %v", err)
	}

	return buf.Bytes()
}

func (e *testEnv) stage(t *testing.T, kind, groupTag, filename string, data []byte) *model.MediaAsset {
	t.Helper()

	asset, err := e.stager.Stage(context.Background(), "curator@museum", kind, groupTag, filename, bytes.NewReader(data))
	if err != nil {
		t.Fatalf("stage %s: %v", filename, err)
	}

	return asset
}

func TestStageWritesFileThenRow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	asset := env.stage(t, model.MediaKindVideo, "grp-1", "tour.mp4", []byte("not really a video"))

	if asset.State != model.MediaStateStaged {
		t.Fatalf("state = %s, want STAGED", asset.State)
	}

	if asset.OwnerID != 0 {
		t.Fatalf("staged asset must have no owner, got %d", asset.OwnerID)
	}

	if asset.FileExt != ".mp4" {
		t.Fatalf("ext = %s, want .mp4", asset.FileExt)
	}

	if !env.fs.Exists(env.codec.StagingPath(asset)) {
		t.Fatal("staging file missing")
	}

	got, err := env.store.Get(ctx, asset.ID)
	if err != nil {
		t.Fatalf("row missing: %v", err)
	}

	if got.StagedBy != "curator@museum" {
		t.Fatalf("staged_by = %s", got.StagedBy)
	}
}

func TestStageRejectsUnknownKind(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.stager.Stage(context.Background(), "x", "hologram", "", "a.jpg", strings.NewReader("x"))
	if !errors.Is(err, ErrInvalidKind) {
		t.Fatalf("err = %v, want ErrInvalidKind", err)
	}
}

func TestPromoteImageAsset(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	asset := env.stage(t, model.MediaKindPhoto, "", "vase.jpg", jpegBytes(t))

	promoted, err := env.syncer.Promote(ctx, asset.ID, 42)
	if err != nil {
		t.Fatalf("promote: %v", err)
	}

	if promoted.State != model.MediaStateSynced || promoted.OwnerID != 42 {
		t.Fatalf("promoted row = %s/%d, want SYNCED/42", promoted.State, promoted.OwnerID)
	}

	if promoted.SyncedAt == nil {
		t.Fatal("synced_at not set")
	}

	durable := env.codec.DurablePath(promoted)
	if !env.fs.Exists(durable) {
		t.Fatal("durable primary missing")
	}

	if !env.fs.Exists(RenditionPath(durable)) {
		t.Fatal("rendition missing")
	}

	// 缩略副本必须装进配置的包围盒（64x48），且等比缩小而非裁剪
	thumb, err := imaging.Open(env.fs.Abs(RenditionPath(durable)))
	if err != nil {
		t.Fatalf("decode rendition: %v", err)
	}

	if w, h := thumb.Bounds().Dx(), thumb.Bounds().Dy(); w > 64 || h > 48 || w == 0 || h == 0 {
		t.Fatalf("rendition is %dx%d, must fit 64x48", w, h)
	}

	if env.fs.Exists(env.codec.StagingPath(asset)) {
		t.Fatal("staging primary left behind")
	}

	if env.fs.Exists(env.codec.StagingDir(asset)) {
		t.Fatal("empty staging dir left behind")
	}
}

func TestPromoteTwiceIsBenignConflict(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	asset := env.stage(t, model.MediaKindPhoto, "", "vase.jpg", jpegBytes(t))

	if _, err := env.syncer.Promote(ctx, asset.ID, 1); err != nil {
		t.Fatalf("first promote: %v", err)
	}

	_, err := env.syncer.Promote(ctx, asset.ID, 2)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("second promote err = %v, want ErrConflict", err)
	}

	// 第一次提升的结果不受影响
	got, err := env.store.Get(ctx, asset.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if got.OwnerID != 1 {
		t.Fatalf("owner = %d, want 1 (first claim wins)", got.OwnerID)
	}
}

func TestPromoteConcurrentSingleWinner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	asset := env.stage(t, model.MediaKindPhoto, "", "vase.jpg", jpegBytes(t))

	start := make(chan struct{})
	errs := make(chan error, 2)

	var wg sync.WaitGroup

	for _, owner := range []uint{101, 102} {
		wg.Add(1)

		go func(owner uint) {
			defer wg.Done()
			<-start

			_, err := env.syncer.Promote(ctx, asset.ID, owner)
			errs <- err
		}(owner)
	}

	close(start)
	wg.Wait()
	close(errs)

	var wins, conflicts int

	for err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrConflict):
			conflicts++
		default:
			t.Fatalf("unexpected promote error: %v", err)
		}
	}

	// 条件更新保证恰好一个认领成功，另一个收到良性 Conflict
	if wins != 1 || conflicts != 1 {
		t.Fatalf("wins=%d conflicts=%d, want exactly one of each", wins, conflicts)
	}

	got, err := env.store.Get(ctx, asset.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if got.State != model.MediaStateSynced {
		t.Fatalf("state = %s, want SYNCED", got.State)
	}

	durable := env.codec.DurablePath(got)
	if !env.fs.Exists(durable) || !env.fs.Exists(RenditionPath(durable)) {
		t.Fatal("durable files missing after the winning promote")
	}
}

func TestPromoteMissingAsset(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.syncer.Promote(context.Background(), "no-such-id", 1)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPromoteCorruptImageStaysStaged(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	asset := env.stage(t, model.MediaKindPhoto, "", "broken.jpg", []byte("this is not an image"))

	_, err := env.syncer.Promote(ctx, asset.ID, 7)
	if !errors.Is(err, ErrUnsupportedOrCorruptMedia) {
		t.Fatalf("err = %v, want ErrUnsupportedOrCorruptMedia", err)
	}

	// 资产回到 STAGED，文件原样保留，可重新上传后重试
	got, err := env.store.Get(ctx, asset.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if got.State != model.MediaStateStaged || got.OwnerID != 0 || got.SyncedAt != nil {
		t.Fatalf("row = %s/%d, want STAGED/0 with nil synced_at", got.State, got.OwnerID)
	}

	if !env.fs.Exists(env.codec.StagingPath(asset)) {
		t.Fatal("staging file must survive a failed promote")
	}
}

func TestPromoteSniffCorrectsExtension(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// JPEG 内容配上 .png 申报名
	asset := env.stage(t, model.MediaKindPhoto, "", "mislabeled.png", jpegBytes(t))

	promoted, err := env.syncer.Promote(ctx, asset.ID, 3)
	if err != nil {
		t.Fatalf("promote: %v", err)
	}

	if promoted.FileExt != ".jpg" {
		t.Fatalf("ext = %s, want sniff-corrected .jpg", promoted.FileExt)
	}

	if !env.fs.Exists(env.codec.DurablePath(promoted)) {
		t.Fatal("durable primary missing under corrected name")
	}

	got, err := env.store.Get(ctx, asset.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if got.FileExt != ".jpg" {
		t.Fatalf("row ext = %s, want .jpg", got.FileExt)
	}
}

func TestPromoteRetryAfterMoveFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// JPEG 内容配上 .png 申报名，提升路径上会先修正扩展名
	asset := env.stage(t, model.MediaKindPhoto, "", "mislabeled.png", jpegBytes(t))

	corrected := *asset
	corrected.FileExt = ".jpg"

	// 用目录占住修正后的持久路径，迫使 rename 失败
	blocked := env.codec.DurablePath(&corrected)
	if err := os.MkdirAll(env.fs.Abs(blocked), 0o755); err != nil {
		t.Fatalf("block durable path: %v", err)
	}

	_, err := env.syncer.Promote(ctx, asset.ID, 8)
	if !errors.Is(err, ErrStorageMoveFailed) {
		t.Fatalf("err = %v, want ErrStorageMoveFailed", err)
	}

	// 回到 STAGED 后行与暂存文件必须一致：都用修正后的扩展名
	got, err := env.store.Get(ctx, asset.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if got.State != model.MediaStateStaged || got.FileExt != ".jpg" {
		t.Fatalf("row = %s/%s, want STAGED/.jpg", got.State, got.FileExt)
	}

	if !env.fs.Exists(env.codec.StagingPath(got)) {
		t.Fatal("staging file missing under the extension the row records")
	}

	// 解除故障后直接重试即可成功，无需人工修复
	if err := os.Remove(env.fs.Abs(blocked)); err != nil {
		t.Fatalf("unblock durable path: %v", err)
	}

	promoted, err := env.syncer.Promote(ctx, asset.ID, 8)
	if err != nil {
		t.Fatalf("retry promote: %v", err)
	}

	if promoted.FileExt != ".jpg" || !env.fs.Exists(env.codec.DurablePath(promoted)) {
		t.Fatal("retry must land the durable primary under the corrected name")
	}
}

func TestPromoteVideoSkipsRendition(t *testing.T) {
	env := newTestEnv(t)

	asset := env.stage(t, model.MediaKindVideo, "", "tour.mp4", []byte("video payload"))

	promoted, err := env.syncer.Promote(context.Background(), asset.ID, 9)
	if err != nil {
		t.Fatalf("promote: %v", err)
	}

	durable := env.codec.DurablePath(promoted)
	if !env.fs.Exists(durable) {
		t.Fatal("durable primary missing")
	}

	if env.fs.Exists(RenditionPath(durable)) {
		t.Fatal("video must not get a rendition")
	}
}

func TestPromoteGroup(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.stage(t, model.MediaKindPhoto, "batch-7", "a.jpg", jpegBytes(t))
	env.stage(t, model.MediaKindPhoto, "batch-7", "b.jpg", jpegBytes(t))
	env.stage(t, model.MediaKindVideo, "batch-7", "c.mp4", []byte("v"))
	env.stage(t, model.MediaKindPhoto, "other", "d.jpg", jpegBytes(t))

	promoted, err := env.syncer.PromoteGroup(ctx, "batch-7", "", 11)
	if err != nil {
		t.Fatalf("promote group: %v", err)
	}

	if len(promoted) != 3 {
		t.Fatalf("promoted %d, want 3", len(promoted))
	}

	synced, err := env.store.FindSynced(ctx, 11, "")
	if err != nil {
		t.Fatalf("find synced: %v", err)
	}

	if len(synced) != 3 {
		t.Fatalf("synced rows = %d, want 3", len(synced))
	}

	// 组里已无暂存成员，重复调用是空操作
	again, err := env.syncer.PromoteGroup(ctx, "batch-7", "", 11)
	if err != nil {
		t.Fatalf("repeat promote group: %v", err)
	}

	if len(again) != 0 {
		t.Fatalf("repeat promoted %d, want 0", len(again))
	}
}

func TestReplaceKeepsIdentity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	original := env.stage(t, model.MediaKindProfile, "", "portrait.jpg", jpegBytes(t))
	if _, err := env.syncer.Promote(ctx, original.ID, 5); err != nil {
		t.Fatalf("promote original: %v", err)
	}

	replacement := env.stage(t, model.MediaKindProfile, "", "portrait-v2.png", pngBytes(t))

	updated, err := env.syncer.Replace(ctx, original.ID, replacement.ID)
	if err != nil {
		t.Fatalf("replace: %v", err)
	}

	if updated.ID != original.ID || updated.StorageDir != original.StorageDir {
		t.Fatal("replace must preserve id and storage_dir")
	}

	if updated.FileExt != ".png" {
		t.Fatalf("ext = %s, want .png", updated.FileExt)
	}

	newPrimary := env.codec.DurablePath(updated)
	if !env.fs.Exists(newPrimary) || !env.fs.Exists(RenditionPath(newPrimary)) {
		t.Fatal("new durable files missing")
	}

	// 扩展名变了，旧文件应被清除
	oldAsset := *original
	oldAsset.FileExt = ".jpg"

	oldPrimary := env.codec.DurablePath(&oldAsset)
	if env.fs.Exists(oldPrimary) || env.fs.Exists(RenditionPath(oldPrimary)) {
		t.Fatal("old durable files left behind")
	}

	// 被消费的暂存行已删除
	if _, err := env.store.Get(ctx, replacement.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("consumed row err = %v, want ErrNotFound", err)
	}
}

func TestReplaceRejectsStagedTarget(t *testing.T) {
	env := newTestEnv(t)

	target := env.stage(t, model.MediaKindPhoto, "", "a.jpg", jpegBytes(t))
	repl := env.stage(t, model.MediaKindPhoto, "", "b.jpg", jpegBytes(t))

	_, err := env.syncer.Replace(context.Background(), target.ID, repl.ID)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
}

func TestReplaceRejectsKindMismatch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	target := env.stage(t, model.MediaKindPhoto, "", "a.jpg", jpegBytes(t))
	if _, err := env.syncer.Promote(ctx, target.ID, 5); err != nil {
		t.Fatalf("promote: %v", err)
	}

	repl := env.stage(t, model.MediaKindVideo, "", "b.mp4", []byte("v"))

	_, err := env.syncer.Replace(ctx, target.ID, repl.ID)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
}

func TestReplaceBookkeepingFailureKeepsOldVersion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	target := env.stage(t, model.MediaKindProfile, "", "portrait.jpg", jpegBytes(t))
	if _, err := env.syncer.Promote(ctx, target.ID, 5); err != nil {
		t.Fatalf("promote: %v", err)
	}

	repl := env.stage(t, model.MediaKindProfile, "", "portrait-v2.png", pngBytes(t))

	// 文件换好之后的落库被迫失败，模拟该阶段的数据库故障
	ddl := fmt.Sprintf(`CREATE TRIGGER fail_bookkeeping BEFORE UPDATE ON media_assets
		WHEN OLD.id = '%s' BEGIN SELECT RAISE(ABORT, 'bookkeeping unavailable'); END`, target.ID)
	if err := env.db.Exec(ddl).Error; err != nil {
		t.Fatalf("install failure trigger: %v", err)
	}

	if _, err := env.syncer.Replace(ctx, target.ID, repl.ID); err == nil {
		t.Fatal("replace must surface the bookkeeping failure")
	}

	// 被消费的行从不经过 SYNCED：失败后它仍是无主的暂存行
	row, err := env.store.Get(ctx, repl.ID)
	if err != nil {
		t.Fatalf("consumed row must survive the rollback: %v", err)
	}

	if row.State != model.MediaStateStaged || row.OwnerID != 0 || row.SyncedAt != nil {
		t.Fatalf("row = %s/%d, want STAGED/0 with nil synced_at", row.State, row.OwnerID)
	}

	// 藏品列表只看到原资产，不出现指向失效文件的幻影行
	synced, err := env.store.FindSynced(ctx, 5, "")
	if err != nil {
		t.Fatalf("find synced: %v", err)
	}

	if len(synced) != 1 || synced[0].ID != target.ID {
		t.Fatalf("synced rows = %d, want only the original", len(synced))
	}

	// 旧版本保持权威：行仍指向旧扩展名，旧文件没有被删除
	got, err := env.store.Get(ctx, target.ID)
	if err != nil {
		t.Fatalf("get target: %v", err)
	}

	if got.FileExt != ".jpg" {
		t.Fatalf("ext = %s, want untouched .jpg", got.FileExt)
	}

	oldPrimary := env.codec.DurablePath(got)
	if !env.fs.Exists(oldPrimary) || !env.fs.Exists(RenditionPath(oldPrimary)) {
		t.Fatal("old durable files must survive a failed replace")
	}
}

func TestReapSyncedAsset(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	asset := env.stage(t, model.MediaKindPhoto, "", "vase.jpg", jpegBytes(t))
	promoted, err := env.syncer.Promote(ctx, asset.ID, 6)
	if err != nil {
		t.Fatalf("promote: %v", err)
	}

	reaped, removed, err := env.reaper.Reap(ctx, asset.ID)
	if err != nil {
		t.Fatalf("reap: %v", err)
	}

	if removed != 2 {
		t.Fatalf("removed %d files, want 2 (primary + rendition)", removed)
	}

	if reaped.State != model.MediaStateSynced {
		t.Fatalf("snapshot state = %s, want SYNCED", reaped.State)
	}

	if _, err := env.store.Get(ctx, asset.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("row err = %v, want ErrNotFound", err)
	}

	durable := env.codec.DurablePath(promoted)
	if env.fs.Exists(durable) || env.fs.Exists(RenditionPath(durable)) {
		t.Fatal("durable files left behind")
	}
}

func TestReapStagedAsset(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	asset := env.stage(t, model.MediaKindVideo, "", "tour.mp4", []byte("v"))

	_, removed, err := env.reaper.Reap(ctx, asset.ID)
	if err != nil {
		t.Fatalf("reap: %v", err)
	}

	if removed != 1 {
		t.Fatalf("removed %d files, want 1", removed)
	}

	if env.fs.Exists(env.codec.StagingPath(asset)) {
		t.Fatal("staging file left behind")
	}
}

func TestReapMissingAsset(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.reaper.Reap(context.Background(), "no-such-id")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestReapCascade(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ids := make([]string, 0, 3)
	for _, name := range []string{"a.jpg", "b.jpg"} {
		asset := env.stage(t, model.MediaKindPhoto, "", name, jpegBytes(t))
		ids = append(ids, asset.ID)
	}

	video := env.stage(t, model.MediaKindVideo, "", "c.mp4", []byte("v"))
	ids = append(ids, video.ID)

	for _, id := range ids {
		if _, err := env.syncer.Promote(ctx, id, 9); err != nil {
			t.Fatalf("promote %s: %v", id, err)
		}
	}

	result, err := env.reaper.ReapCascade(ctx, 9)
	if err != nil {
		t.Fatalf("cascade: %v", err)
	}

	if len(result.Reaped) != 3 || len(result.Failures) != 0 {
		t.Fatalf("reaped=%d failures=%d, want 3/0", len(result.Reaped), len(result.Failures))
	}

	remaining, err := env.store.FindSynced(ctx, 9, "")
	if err != nil {
		t.Fatalf("find synced: %v", err)
	}

	if len(remaining) != 0 {
		t.Fatalf("rows remaining = %d, want 0", len(remaining))
	}
}

func TestSweepStagedHonorsCutoff(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	stale := env.stage(t, model.MediaKindPhoto, "", "old.jpg", jpegBytes(t))
	fresh := env.stage(t, model.MediaKindPhoto, "", "new.jpg", jpegBytes(t))

	// 把一条回拨到保留窗口之外
	backdated := time.Now().UTC().Add(-48 * time.Hour)
	if err := env.db.Model(&model.MediaAsset{}).
		Where("id = ?", stale.ID).
		Update("created_at", backdated).Error; err != nil {
		t.Fatalf("backdate: %v", err)
	}

	swept, err := env.reaper.SweepStaged(ctx, time.Now().UTC().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}

	if swept != 1 {
		t.Fatalf("swept %d, want 1", swept)
	}

	if _, err := env.store.Get(ctx, stale.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("stale row err = %v, want ErrNotFound", err)
	}

	if _, err := env.store.Get(ctx, fresh.ID); err != nil {
		t.Fatalf("fresh row must survive sweep: %v", err)
	}
}

func TestRevertToStagedClearsClaim(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	asset := env.stage(t, model.MediaKindVideo, "", "a.mp4", []byte("v"))

	if err := env.store.TransitionToSynced(ctx, asset.ID, 4, time.Now().UTC()); err != nil {
		t.Fatalf("claim: %v", err)
	}

	if err := env.store.RevertToStaged(ctx, asset.ID); err != nil {
		t.Fatalf("revert: %v", err)
	}

	got, err := env.store.Get(ctx, asset.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if got.State != model.MediaStateStaged || got.OwnerID != 0 || got.SyncedAt != nil {
		t.Fatalf("row = %s/%d, want STAGED/0 with nil synced_at", got.State, got.OwnerID)
	}
}
