package dao

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/mesh05/Techolution-PRM/prm/sources/psql"
	"github.com/mesh05/Techolution-PRM/prm/sources/psql/models"
	"github.com/mesh05/Techolution-PRM/prm/utils/logging"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- Helpers ---

func setupTestDB(t *testing.T) *gorm.DB {
	logging.InitLogger()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := psql.Migrate(context.Background(), db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

// --- Users ---

func TestEnsureUserCreatesOnce(t *testing.T) {
	db := setupTestDB(t)
	dao := NewUserDAO(db)
	ctx := context.Background()

	u1, err := dao.EnsureUser(ctx, "demo")
	if err != nil {
		t.Fatalf("ensure failed: %v", err)
	}
	u2, err := dao.EnsureUser(ctx, "demo")
	if err != nil {
		t.Fatalf("second ensure failed: %v", err)
	}
	if u1.ID != u2.ID {
		t.Errorf("EnsureUser created a duplicate: %v vs %v", u1.ID, u2.ID)
	}

	missing, err := dao.GetUserByUsername(ctx, "nobody")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown username, got %+v", missing)
	}
}

// --- Conversations ---

func TestConversationScoping(t *testing.T) {
	db := setupTestDB(t)
	dao := NewConversationDAO(db)
	ctx := context.Background()

	conv, err := dao.Create(ctx, "alice")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if len(conv.ID) != 32 {
		t.Errorf("expected 32-char hex id, got %q", conv.ID)
	}

	if _, err := dao.Get(ctx, "alice", conv.ID); err != nil {
		t.Errorf("owner lookup failed: %v", err)
	}
	if _, err := dao.Get(ctx, "bob", conv.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for another user's conversation, got %v", err)
	}
}

func TestAppendAndWindowMessages(t *testing.T) {
	db := setupTestDB(t)
	dao := NewConversationDAO(db)
	ctx := context.Background()

	conv, err := dao.Create(ctx, "demo")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	for i := 0; i < 10; i++ {
		role := models.RoleUser
		if i%2 == 1 {
			role = models.RoleAssistant
		}
		if _, err := dao.AppendMessage(ctx, "demo", conv.ID, role, fmt.Sprintf("msg-%d", i)); err != nil {
			t.Fatalf("append %d failed: %v", i, err)
		}
	}

	n, err := dao.CountMessages(ctx, conv.ID)
	if err != nil || n != 10 {
		t.Fatalf("expected 10 messages, got %d (err %v)", n, err)
	}

	// offset=0 limit=3 -> newest 3, oldest first
	msgs, err := dao.GetMessages(ctx, "demo", conv.ID, 3, 0)
	if err != nil {
		t.Fatalf("window failed: %v", err)
	}
	if len(msgs) != 3 || msgs[0].Content != "msg-7" || msgs[2].Content != "msg-9" {
		t.Errorf("unexpected tail window: %+v", contents(msgs))
	}

	// offset=3 limit=3 -> the 3 before those
	msgs, err = dao.GetMessages(ctx, "demo", conv.ID, 3, 3)
	if err != nil {
		t.Fatalf("window failed: %v", err)
	}
	if len(msgs) != 3 || msgs[0].Content != "msg-4" || msgs[2].Content != "msg-6" {
		t.Errorf("unexpected middle window: %+v", contents(msgs))
	}

	// offset beyond the head clamps empty
	msgs, err = dao.GetMessages(ctx, "demo", conv.ID, 5, 50)
	if err != nil {
		t.Fatalf("window failed: %v", err)
	}
	if len(msgs) != 0 {
		t.Errorf("expected empty window past the head, got %+v", contents(msgs))
	}

	// limit bigger than the log returns everything
	msgs, err = dao.GetMessages(ctx, "demo", conv.ID, 100, 0)
	if err != nil {
		t.Fatalf("window failed: %v", err)
	}
	if len(msgs) != 10 || msgs[0].Content != "msg-0" {
		t.Errorf("expected full log oldest-first, got %+v", contents(msgs))
	}
}

func TestDeleteConversationCascades(t *testing.T) {
	db := setupTestDB(t)
	dao := NewConversationDAO(db)
	ctx := context.Background()

	conv, _ := dao.Create(ctx, "demo")
	if _, err := dao.AppendMessage(ctx, "demo", conv.ID, models.RoleUser, "hello"); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	if err := dao.Delete(ctx, "bob", conv.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting as another user, got %v", err)
	}
	if err := dao.Delete(ctx, "demo", conv.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := dao.Get(ctx, "demo", conv.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("conversation still present after delete")
	}
	n, _ := dao.CountMessages(ctx, conv.ID)
	if n != 0 {
		t.Errorf("expected messages removed with conversation, %d left", n)
	}
}

func contents(msgs []models.Message) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.Content
	}
	return out
}

// --- Resources ---

func TestResourceScopedCRUD(t *testing.T) {
	db := setupTestDB(t)
	dao := NewResourceDAO(db)
	ctx := context.Background()

	r := &models.Resource{
		ResourceID:     "R-001",
		Name:           "Asha",
		Role:           "Engineer",
		Skills:         []string{"Go", "Postgres"},
		ConversationID: "conv-a",
		UserID:         "demo",
	}
	if err := dao.Create(ctx, r); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := dao.Get(ctx, "R-001", "conv-a", "demo")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Name != "Asha" || len(got.Skills) != 2 {
		t.Errorf("unexpected resource: %+v", got)
	}

	if _, err := dao.Get(ctx, "R-001", "conv-b", "demo"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound outside its conversation, got %v", err)
	}

	got.Role = "Senior Engineer"
	if err := dao.Update(ctx, got); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	again, _ := dao.Get(ctx, "R-001", "conv-a", "demo")
	if again.Role != "Senior Engineer" {
		t.Errorf("update not persisted: %+v", again)
	}

	if err := dao.Delete(ctx, "R-001", "conv-a", "demo"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	exists, _ := dao.Exists(ctx, "R-001", "conv-a", "demo")
	if exists {
		t.Errorf("resource still exists after delete")
	}
}

func TestResourceListFilterAndTotal(t *testing.T) {
	db := setupTestDB(t)
	dao := NewResourceDAO(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		name := fmt.Sprintf("Dev %d", i)
		if i == 3 {
			name = "Priya"
		}
		r := &models.Resource{
			ResourceID:     fmt.Sprintf("R-%03d", i),
			Name:           name,
			Role:           "Engineer",
			ConversationID: "conv-a",
			UserID:         "demo",
		}
		if err := dao.Upsert(ctx, r); err != nil {
			t.Fatalf("upsert %d failed: %v", i, err)
		}
	}

	items, total, err := dao.List(ctx, 2, 0, "")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 5 || len(items) != 2 {
		t.Errorf("expected total 5 page 2, got total %d page %d", total, len(items))
	}

	items, total, err = dao.List(ctx, 10, 0, "Priya")
	if err != nil {
		t.Fatalf("filtered list failed: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].ResourceID != "R-003" {
		t.Errorf("unexpected filter result: total %d items %+v", total, items)
	}
}

// --- Projects ---

func TestProjectUpsertOverwrites(t *testing.T) {
	db := setupTestDB(t)
	dao := NewProjectDAO(db)
	ctx := context.Background()

	p := &models.Project{
		ProjectID:      "P-001",
		Name:           "Apollo",
		ConversationID: "conv-a",
		UserID:         "demo",
	}
	if err := dao.Upsert(ctx, p); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	p.Name = "Apollo v2"
	if err := dao.Upsert(ctx, p); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	got, err := dao.Get(ctx, "P-001", "conv-a", "demo")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Name != "Apollo v2" {
		t.Errorf("expected overwrite, got %+v", got)
	}

	items, total, err := dao.List(ctx, 10, 0, "", nil)
	if err != nil || total != 1 || len(items) != 1 {
		t.Errorf("expected a single row after upserts, got total %d (err %v)", total, err)
	}
}
