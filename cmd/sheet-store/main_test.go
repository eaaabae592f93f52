package main

import (
	"bytes"
	"context"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/KirkDiggler/rpg-sheet-store/internal/errors"
	sheetv1 "github.com/KirkDiggler/rpg-sheet-store/internal/handlers/sheet/v1"
	characterorchestrator "github.com/KirkDiggler/rpg-sheet-store/internal/orchestrators/character"
	characterrepo "github.com/KirkDiggler/rpg-sheet-store/internal/repositories/character"
)

type CLITestSuite struct {
	suite.Suite
	dir    string
	stderr *bytes.Buffer
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLITestSuite))
}

func (s *CLITestSuite) SetupTest() {
	s.dir = filepath.Join(s.T().TempDir(), "characters")
}

// run executes one command against the test storage directory
func (s *CLITestSuite) run(stdin string, args ...string) (string, error) {
	var out bytes.Buffer
	cmd := newRootCmd(strings.NewReader(stdin), &out)
	s.stderr = &bytes.Buffer{}
	cmd.SetErr(s.stderr)
	cmd.SetArgs(append([]string{"--data-dir", s.dir}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (s *CLITestSuite) TestDirPrintsStorageLocation() {
	out, err := s.run("", "dir")

	s.Require().NoError(err)
	s.Equal(s.dir+"\n", out)
}

func (s *CLITestSuite) TestEmptyList() {
	out, err := s.run("", "list")

	s.Require().NoError(err)
	s.Contains(out, "No characters stored.")
	s.NoDirExists(s.dir, "listing never creates the directory")
}

func (s *CLITestSuite) TestSaveShowListDelete() {
	record := `{"id": "abc", "name": "Fenn", "race": "Halfling", "class": "Rogue", "level": 3, "hit_points": 22}`

	out, err := s.run(record, "save", "-")
	s.Require().NoError(err)
	s.Equal(filepath.Join(s.dir, "abc.json")+"\n", out)

	out, err = s.run("", "show", "abc")
	s.Require().NoError(err)
	s.Contains(out, `"name": "Fenn"`)
	s.Contains(out, `"alignment": "Neutral"`)

	out, err = s.run("", "list")
	s.Require().NoError(err)
	s.Contains(out, "Fenn")
	s.Contains(out, "Rogue")

	out, err = s.run("", "delete", "abc")
	s.Require().NoError(err)
	s.Equal("deleted abc\n", out)

	out, err = s.run("", "delete", "abc")
	s.Require().NoError(err)
	s.Contains(out, "nothing to delete")
}

func (s *CLITestSuite) TestNewGeneratesID() {
	out, err := s.run("", "new", "--name", "Fresh", "--class", "Wizard")
	s.Require().NoError(err)

	id := strings.TrimSpace(out)
	s.NotEmpty(id)
	s.FileExists(filepath.Join(s.dir, id+".json"))

	_, err = s.run("", "new", "--name", "Again", "--id", id)
	s.True(errors.IsAlreadyExists(err))
}

func (s *CLITestSuite) TestShowMissing() {
	_, err := s.run("", "show", "ghost")

	s.True(errors.IsNotFound(err))
}

func (s *CLITestSuite) TestListCorruptRecord() {
	s.Require().NoError(os.MkdirAll(s.dir, 0o755))
	s.Require().NoError(os.WriteFile(filepath.Join(s.dir, "bad.json"), []byte("{"), 0o644))

	_, err := s.run("", "list")
	s.Require().Error(err)
	s.Contains(err.Error(), "bad.json")

	out, err := s.run("", "list", "--skip-corrupt")
	s.Require().NoError(err)
	s.Contains(out, "No characters stored.")
	s.Contains(s.stderr.String(), "skipped "+filepath.Join(s.dir, "bad.json"))
	s.Contains(s.stderr.String(), "unexpected end of JSON input")
}

func (s *CLITestSuite) TestCheckReportsAndDeletes() {
	_, err := s.run(`{"id": "good", "name": "Fine"}`, "save")
	s.Require().NoError(err)
	s.Require().NoError(os.WriteFile(filepath.Join(s.dir, "bad.json"), []byte("{"), 0o644))

	out, err := s.run("", "check")
	s.Require().NoError(err)
	s.Contains(out, "Checked 2 records, found 1 unreadable")
	s.Contains(out, filepath.Join(s.dir, "bad.json"))
	s.Contains(out, "unexpected end of JSON input")

	out, err = s.run("no\n", "check", "--delete")
	s.Require().NoError(err)
	s.Contains(out, "Aborted")
	s.FileExists(filepath.Join(s.dir, "bad.json"))

	_, err = s.run("yes\n", "check", "--delete")
	s.Require().NoError(err)
	s.NoFileExists(filepath.Join(s.dir, "bad.json"))
	s.FileExists(filepath.Join(s.dir, "good.json"))
}

func (s *CLITestSuite) TestExportImport() {
	_, err := s.run(`{"id": "ora", "name": "Ora"}`, "save")
	s.Require().NoError(err)

	bundle := filepath.Join(s.T().TempDir(), "party.yaml")
	_, err = s.run("", "export", "--format", "yaml", "--out", bundle)
	s.Require().NoError(err)

	data, err := os.ReadFile(bundle)
	s.Require().NoError(err)
	s.True(strings.HasPrefix(string(data), "characters:\n"))

	_, err = s.run("", "delete", "ora")
	s.Require().NoError(err)

	out, err := s.run("", "import", bundle)
	s.Require().NoError(err)
	s.Equal("ora\n", out)
	s.FileExists(filepath.Join(s.dir, "ora.json"))
}

func (s *CLITestSuite) TestInvalidBackend() {
	_, err := s.run("", "--backend", "mongo", "list")

	s.True(errors.IsInvalidArgument(err))
}

func (s *CLITestSuite) TestFormatFromPath() {
	s.Equal("yaml", formatFromPath("party.YML"))
	s.Equal("yaml", formatFromPath("/tmp/party.yaml"))
	s.Equal("json", formatFromPath("party.json"))
	s.Equal("json", formatFromPath("-"))
}

// GRPCServerTestSuite checks the services a server is built with
type GRPCServerTestSuite struct {
	suite.Suite
	server *grpc.Server
	conn   *grpc.ClientConn
}

func TestGRPCServerSuite(t *testing.T) {
	suite.Run(t, new(GRPCServerTestSuite))
}

func (s *GRPCServerTestSuite) SetupTest() {
	repo, err := characterrepo.NewFile(&characterrepo.FileConfig{
		Dir: filepath.Join(s.T().TempDir(), "characters"),
	})
	s.Require().NoError(err)
	svc, err := characterorchestrator.New(&characterorchestrator.Config{CharacterRepo: repo})
	s.Require().NoError(err)

	srv, _, err := newGRPCServer(svc)
	s.Require().NoError(err)
	s.server = srv

	lis := bufconn.Listen(1024 * 1024)
	go func() {
		_ = srv.Serve(lis)
	}()

	s.conn, err = grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	s.Require().NoError(err)
}

func (s *GRPCServerTestSuite) TearDownTest() {
	_ = s.conn.Close()
	s.server.Stop()
}

func (s *GRPCServerTestSuite) TestHealthReportsStoreServing() {
	resp, err := grpc_health_v1.NewHealthClient(s.conn).Check(context.Background(),
		&grpc_health_v1.HealthCheckRequest{Service: sheetv1.ServiceName})

	s.Require().NoError(err)
	s.Equal(grpc_health_v1.HealthCheckResponse_SERVING, resp.GetStatus())
}

func (s *GRPCServerTestSuite) TestStoreIsRegistered() {
	resp, err := sheetv1.NewCharacterStoreClient(s.conn).ListCharacters(context.Background(), &emptypb.Empty{})

	s.Require().NoError(err)
	s.Empty(resp.GetValues())
}
