//go:build integration

package repo

import (
	"context"
	"fmt"
	"os/exec"
	"testing"
	"time"

	"feedgate/backend/app/db"
	"feedgate/backend/app/models"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func skipIfNoDocker(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if exec.CommandContext(ctx, "docker", "info").Run() != nil {
		t.Skip("Skipping test: Docker not available")
	}
}

func startMySQL(t *testing.T) string {
	t.Helper()
	skipIfNoDocker(t)
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mysql:8.0",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "root",
			"MYSQL_DATABASE":      "feedgate",
		},
		WaitingFor: wait.ForAll(
			wait.ForLog("port: 3306  MySQL Community Server"),
			wait.ForListeningPort("3306/tcp"),
		).WithDeadline(2 * time.Minute),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("start mysql: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatal(err)
	}
	port, err := container.MappedPort(ctx, "3306/tcp")
	if err != nil {
		t.Fatal(err)
	}
	return fmt.Sprintf("root:root@tcp(%s:%s)/feedgate?charset=utf8mb4&parseTime=True&loc=UTC", host, port.Port())
}

func TestMySQL_CascadeAndFeed(t *testing.T) {
	gdb := openStore(t, db.Config{Driver: "mysql", DSN: startMySQL(t)})
	ctx := context.Background()
	users, posts, follows := NewUserRepository(gdb), NewPostRepository(gdb), NewFollowRepository(gdb)

	a := seedUser(t, users, "alice")
	b := seedUser(t, users, "bob")
	if err := follows.Create(ctx, b.ID, a.ID); err != nil {
		t.Fatal(err)
	}
	for _, title := range []string{"one", "two"} {
		if err := posts.Create(ctx, &models.Post{UserID: a.ID, UserName: a.UserName, Title: title, Description: "d"}); err != nil {
			t.Fatal(err)
		}
	}

	feed, err := posts.List(ctx, ListQuery{FollowerID: b.ID, Sort: "title", Limit: 5})
	if err != nil || len(feed) != 2 {
		t.Fatalf("feed = %d posts, %v", len(feed), err)
	}

	changed, err := users.MarkSubscribed(ctx, b.ID)
	if err != nil || !changed {
		t.Fatalf("MarkSubscribed = %v, %v", changed, err)
	}

	sum, err := users.DeleteCascade(ctx, a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Posts != 2 || sum.Follows != 1 {
		t.Errorf("summary = %+v", sum)
	}
}
