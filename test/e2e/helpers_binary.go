//go:build e2e

package e2e

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/exec"
	"testing"
	"time"
)

// solaceServer manages a running Solace server process.
type solaceServer struct {
	cmd     *exec.Cmd
	dataDir string
	address string
	secret  []byte
	logFile *os.File
}

// startSolace launches the Solace binary and waits for it to become healthy.
// Solace is configured entirely via environment variables.
func startSolace(t *testing.T) *solaceServer {
	t.Helper()
	return startSolaceIn(t, t.TempDir())
}

func startSolaceIn(t *testing.T, dataDir string) *solaceServer {
	t.Helper()

	if solaceBin == "" {
		t.Skip("solace binary not available (set SOLACE_BIN or add to PATH)")
	}

	port := freePort(t)
	s := &solaceServer{
		dataDir: dataDir,
		address: fmt.Sprintf("127.0.0.1:%d", port),
		secret:  testSecret,
	}

	lf, err := os.OpenFile(fmt.Sprintf("%s/solace.log", dataDir), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		t.Fatalf("create log file: %v", err)
	}
	s.logFile = lf

	s.cmd = exec.Command(solaceBin)
	s.cmd.Env = append(os.Environ(),
		fmt.Sprintf("SOLACE_PORT=%d", port),
		"SOLACE_DB_PATH="+fmt.Sprintf("%s/solace.db", dataDir),
		"SOLACE_JWT_SECRET="+string(testSecret),
		"SOLACE_CONFIG_PATH="+fmt.Sprintf("%s/nonexistent.yaml", dataDir), // skip YAML file
		"SOLACE_LOG_LEVEL=debug",
	)
	s.cmd.Stdout = lf
	s.cmd.Stderr = lf

	if err := s.cmd.Start(); err != nil {
		lf.Close()
		t.Fatalf("start solace: %v", err)
	}

	t.Cleanup(func() {
		s.stop()
		lf.Close()
	})

	if err := s.waitHealthy(10 * time.Second); err != nil {
		t.Fatalf("solace not healthy: %v", err)
	}
	return s
}

func (s *solaceServer) stop() {
	if s.cmd != nil && s.cmd.Process != nil && s.cmd.ProcessState == nil {
		_ = s.cmd.Process.Signal(os.Interrupt)
		_ = s.cmd.Wait()
	}
}

// restartOnSameData stops the server and starts a new one on the same data directory.
func (s *solaceServer) restartOnSameData(t *testing.T) *solaceServer {
	t.Helper()
	s.stop()
	return startSolaceIn(t, s.dataDir)
}

func (s *solaceServer) baseURL() string {
	return fmt.Sprintf("http://%s", s.address)
}

func (s *solaceServer) waitHealthy(timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	url := fmt.Sprintf("%s/api/v1/health", s.baseURL())

	for time.Now().Before(deadline) {
		resp, err := http.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("solace not healthy after %s", timeout)
}

// syncBatch posts ops to the running server and decodes the results.
func (s *solaceServer) syncBatch(t *testing.T, owner string, ops ...op) []opResult {
	t.Helper()
	req, _ := http.NewRequest(http.MethodPost, s.baseURL()+"/api/v1/sync/batch", makeBatchBody(t, ops))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t, owner, s.secret))

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("sync batch: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("sync batch: status %d: %s", resp.StatusCode, body)
	}
	var out batchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("sync batch decode: %v", err)
	}
	if len(out.Results) != len(ops) {
		t.Fatalf("got %d results for %d operations", len(out.Results), len(ops))
	}
	return out.Results
}

func (s *solaceServer) logContents(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(fmt.Sprintf("%s/solace.log", s.dataDir))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	return string(data)
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("find free port: %v", err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}
