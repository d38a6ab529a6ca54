package upload

import (
	"context"
	"testing"
	"time"

	"github.com/wasilah/csr/internal/config"
)

func testManager() *Manager {
	return NewManager(config.UploadConfig{
		MaxSizeMB:    10,
		AllowedTypes: []string{"jpg", "png", "pdf"},
	})
}

func waitForStatus(t *testing.T, b *Batch, id string, want Status) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		for _, f := range b.Files() {
			if f.ID == id && f.Status == want {
				return
			}
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("file %s never reached status %s", id, want)
}

func TestAddRejectsDisallowedExtension(t *testing.T) {
	b := testManager().NewBatch(context.Background())
	defer b.Close()

	f, err := b.Add("malware.exe", 100)
	if err == nil {
		t.Fatal("expected validation error for .exe")
	}
	if f.Status != StatusError {
		t.Fatalf("expected error status, got %s", f.Status)
	}
}

func TestAddRejectsOversizedFile(t *testing.T) {
	b := testManager().NewBatch(context.Background())
	defer b.Close()

	if _, err := b.Add("huge.jpg", 11*1024*1024); err == nil {
		t.Fatal("expected size validation error")
	}
}

func TestInvalidFileDoesNotBlockBatch(t *testing.T) {
	b := testManager().NewBatch(context.Background())
	b.SetTick(time.Millisecond)
	defer b.Close()

	b.Add("bad.exe", 100)
	ok, err := b.Add("photo.jpg", 1024)
	if err != nil {
		t.Fatalf("valid file rejected: %v", err)
	}

	waitForStatus(t, b, ok.ID, StatusSuccess)
}

func TestSuccessIDsSplitsMediaAndDocuments(t *testing.T) {
	b := testManager().NewBatch(context.Background())
	b.SetTick(time.Millisecond)
	defer b.Close()

	img, _ := b.Add("site.png", 1024)
	doc, _ := b.Add("report.pdf", 2048)
	b.Add("broken.exe", 10)

	waitForStatus(t, b, img.ID, StatusSuccess)
	waitForStatus(t, b, doc.ID, StatusSuccess)

	mediaIDs, documentIDs := b.SuccessIDs()
	if len(mediaIDs) != 1 || mediaIDs[0] != img.ID {
		t.Fatalf("unexpected media ids: %v", mediaIDs)
	}
	if len(documentIDs) != 1 || documentIDs[0] != doc.ID {
		t.Fatalf("unexpected document ids: %v", documentIDs)
	}
}

func TestCloseCancelsInFlightUploads(t *testing.T) {
	b := testManager().NewBatch(context.Background())
	b.SetTick(time.Hour) // 保证在取消前不会完成
	f, _ := b.Add("slow.jpg", 1024)

	b.Close()
	waitForStatus(t, b, f.ID, StatusError)
}

func TestCancelStopsSingleUpload(t *testing.T) {
	b := testManager().NewBatch(context.Background())
	b.SetTick(time.Hour)
	defer b.Close()

	f, _ := b.Add("slow.jpg", 1024)
	other, _ := b.Add("steady.png", 1024)

	cancelled, err := b.Cancel(f.ID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Status != StatusError {
		t.Fatalf("expected error status after cancel, got %s", cancelled.Status)
	}
	if _, err := b.Cancel(f.ID); err == nil {
		t.Fatal("second cancel should fail, file is no longer uploading")
	}

	// 其他文件不受影响
	for _, file := range b.Files() {
		if file.ID == other.ID && file.Status != StatusUploading {
			t.Fatalf("untouched file changed status: %s", file.Status)
		}
	}
}

func TestRetryRestartsFailedFile(t *testing.T) {
	b := testManager().NewBatch(context.Background())
	b.SetTick(time.Millisecond)
	defer b.Close()

	f, _ := b.Add("bad.exe", 100)
	if _, err := b.Retry(f.ID); err == nil {
		t.Fatal("retry of a file that still fails validation should error")
	}
}
