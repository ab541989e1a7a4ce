package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	pkgapi "github.com/blackfile/blackfile-cli/pkg/api"
)

// progressReader counts the bytes pulled from the wrapped reader and
// reports them as a 0-100 percentage.
type progressReader struct {
	r          io.Reader
	total      int64
	read       int64
	onProgress func(float64)
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	if n > 0 && p.onProgress != nil && p.total > 0 {
		p.read += int64(n)
		pct := float64(p.read) / float64(p.total) * 100
		if pct > 100 {
			pct = 100
		}
		p.onProgress(pct)
	}
	return n, err
}

// UploadFile streams one file as a multipart POST to /files/upload.
// onProgress, when non-nil, receives byte-level progress and is snapped
// to 100 once the backend confirms the upload. There is no retry and no
// refresh-and-retry on this path; a 401 surfaces as a server error.
func (c *Client) UploadFile(ctx context.Context, fileName string, r io.Reader, size int64, onProgress func(float64)) (*pkgapi.UploadResponse, error) {
	counted := &progressReader{r: r, total: size, onProgress: onProgress}

	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)

	go func() {
		part, err := form.CreateFormFile("file", fileName)
		if err != nil {
			pw.CloseWithError(fmt.Errorf("failed to create form file: %w", err))
			return
		}
		if _, err := io.Copy(part, counted); err != nil {
			pw.CloseWithError(fmt.Errorf("failed to copy file data: %w", err))
			return
		}
		pw.CloseWithError(form.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/files/upload", pr)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	if token := c.accessToken(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, serverError(resp.StatusCode, respBody)
	}

	var uploaded pkgapi.UploadResponse
	if err := decodeResponse(respBody, &uploaded); err != nil {
		return nil, err
	}
	if onProgress != nil {
		onProgress(100)
	}
	return &uploaded, nil
}

// DownloadFile streams the file body into w and returns the number of
// bytes written. The caller owns the writer; errors from the backend
// arrive as a JSON body, not a payload.
func (c *Client) DownloadFile(ctx context.Context, fileID string, w io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/files/"+fileID+"/download", nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create download request: %w", err)
	}
	if token := c.accessToken(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("download failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp pkgapi.ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&errResp) == nil && errResp.Error != "" {
			return 0, fmt.Errorf("server error (%d): %s", resp.StatusCode, errResp.Error)
		}
		return 0, fmt.Errorf("download failed with status %d", resp.StatusCode)
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("failed to write download: %w", err)
	}
	return n, nil
}
