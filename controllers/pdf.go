package controllers

import (
	"io"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
)

// Drive links arrive in two shapes: .../d/<id>/view and ...?id=<id>.
var (
	drivePathID  = regexp.MustCompile(`/d/([a-zA-Z0-9_-]+)`)
	driveQueryID = regexp.MustCompile(`[?&]id=([a-zA-Z0-9_-]+)`)
)

// PDFController relays PDF bytes from the file host so the mobile client
// never talks to Google Drive directly. BaseURL and Client are injected;
// tests point them at a local server.
type PDFController struct {
	BaseURL string
	Client  *http.Client
}

func NewPDFController(baseURL string) *PDFController {
	return &PDFController{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// ExtractDriveFileID pulls the file ID out of a shared Drive link,
// tolerating URL-encoded input and trailing parameters like
// /view?usp=sharing.
func ExtractDriveFileID(driveURL string) string {
	if decoded, err := url.QueryUnescape(driveURL); err == nil {
		driveURL = decoded
	}
	if m := drivePathID.FindStringSubmatch(driveURL); m != nil {
		return m[1]
	}
	if m := driveQueryID.FindStringSubmatch(driveURL); m != nil {
		return m[1]
	}
	return ""
}

// Proxy handles GET /api/pdf?url=<drive link>: it resolves the file ID,
// fetches the direct-download URL, and streams the bytes through.
func (p *PDFController) Proxy(c *gin.Context) {
	driveURL := c.Query("url")
	if driveURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing Drive URL"})
		return
	}

	fileID := ExtractDriveFileID(driveURL)
	if fileID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":     "Invalid Google Drive URL format",
			"receivedUrl": driveURL,
		})
		return
	}

	downloadURL := p.BaseURL + "/uc?export=download&id=" + fileID

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, downloadURL, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load PDF"})
		return
	}
	// Drive serves an interstitial to clients without a browser UA
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := p.Client.Do(req)
	if err != nil {
		log.Printf("PDF proxy: fetch failed for file %s: %v", fileID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load PDF"})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		// upstream 5xx is our failure to serve, not the caller's request
		log.Printf("PDF proxy: upstream returned %d for file %s", resp.StatusCode, fileID)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load PDF"})
		return
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("PDF proxy: upstream returned %d for file %s", resp.StatusCode, fileID)
		c.JSON(resp.StatusCode, gin.H{
			"message": "Failed to fetch from Google Drive",
			"status":  resp.StatusCode,
			"fileId":  fileID,
		})
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Cache-Control", "public, max-age=3600")
	if cl := resp.Header.Get("Content-Length"); cl != "" {
		c.Header("Content-Length", cl)
	}

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, resp.Body); err != nil {
		// headers are already out; nothing to do but log
		log.Printf("PDF proxy: stream error for file %s: %v", fileID, err)
	}
}
