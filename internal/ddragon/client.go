// Package ddragon reads League of Legends static data (champions, items,
// runes) from Data Dragon and keeps a JSON copy on disk.
package ddragon

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the public Data Dragon CDN.
const DefaultBaseURL = "https://ddragon.leagueoflegends.com"

const locale = "en_US"

// Client fetches Data Dragon documents for the latest patch.
type Client struct {
	baseURL  string
	cacheDir string
	http     *http.Client
	version  string
}

// NewClient returns a client caching under cacheDir. An empty cacheDir
// disables the disk cache.
func NewClient(cacheDir string) *Client {
	return &Client{
		baseURL:  DefaultBaseURL,
		cacheDir: cacheDir,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

// WithBaseURL points the client at another host; used by tests.
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = strings.TrimRight(u, "/")
	return c
}

// Champion is the summary entry from champion.json.
type Champion struct {
	ID    string             `json:"id"`
	Key   string             `json:"key"`
	Name  string             `json:"name"`
	Title string             `json:"title"`
	Blurb string             `json:"blurb"`
	Tags  []string           `json:"tags"`
	Stats map[string]float64 `json:"stats"`
}

// Item is one entry from item.json.
type Item struct {
	ID        string   `json:"-"`
	Name      string   `json:"name"`
	Plaintext string   `json:"plaintext"`
	Tags      []string `json:"tags"`
	Gold      struct {
		Base        int  `json:"base"`
		Total       int  `json:"total"`
		Sell        int  `json:"sell"`
		Purchasable bool `json:"purchasable"`
	} `json:"gold"`
}

// RunePath is one tree from runesReforged.json.
type RunePath struct {
	ID    int    `json:"id"`
	Key   string `json:"key"`
	Name  string `json:"name"`
	Slots []struct {
		Runes []Rune `json:"runes"`
	} `json:"slots"`
}

// Keystones returns the runes of the first slot.
func (p RunePath) Keystones() []Rune {
	if len(p.Slots) == 0 {
		return nil
	}
	return p.Slots[0].Runes
}

// Rune is a single rune.
type Rune struct {
	ID        int    `json:"id"`
	Key       string `json:"key"`
	Name      string `json:"name"`
	ShortDesc string `json:"shortDesc"`
}

// LatestVersion returns the newest patch, e.g. "14.20.1". The cached
// version is reused until ClearCache.
func (c *Client) LatestVersion(ctx context.Context) (string, error) {
	if c.version != "" {
		return c.version, nil
	}
	var cached struct {
		Version string `json:"version"`
	}
	if c.readCache("version.json", &cached) && cached.Version != "" {
		c.version = cached.Version
		return c.version, nil
	}

	var versions []string
	if err := c.get(ctx, "/api/versions.json", &versions); err != nil {
		return "", err
	}
	if len(versions) == 0 {
		return "", errors.New("ddragon: empty version list")
	}
	c.version = versions[0]
	cached.Version = c.version
	c.writeCache("version.json", cached)
	return c.version, nil
}

// Champions returns every champion sorted by name.
func (c *Client) Champions(ctx context.Context) ([]Champion, error) {
	var doc struct {
		Data map[string]Champion `json:"data"`
	}
	if err := c.document(ctx, "champion.json", &doc); err != nil {
		return nil, err
	}
	out := make([]Champion, 0, len(doc.Data))
	for _, ch := range doc.Data {
		out = append(out, ch)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Items returns every purchasable item sorted by total cost then name.
func (c *Client) Items(ctx context.Context) ([]Item, error) {
	var doc struct {
		Data map[string]Item `json:"data"`
	}
	if err := c.document(ctx, "item.json", &doc); err != nil {
		return nil, err
	}
	out := make([]Item, 0, len(doc.Data))
	for id, it := range doc.Data {
		if !it.Gold.Purchasable {
			continue
		}
		it.ID = id
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Gold.Total != out[j].Gold.Total {
			return out[i].Gold.Total < out[j].Gold.Total
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// Runes returns the rune trees in Data Dragon order.
func (c *Client) Runes(ctx context.Context) ([]RunePath, error) {
	var paths []RunePath
	if err := c.document(ctx, "runesReforged.json", &paths); err != nil {
		return nil, err
	}
	return paths, nil
}

// ClearCache removes every cached document and forgets the version.
func (c *Client) ClearCache() error {
	c.version = ""
	if c.cacheDir == "" {
		return nil
	}
	files, err := filepath.Glob(filepath.Join(c.cacheDir, "*.json"))
	if err != nil {
		return err
	}
	for _, f := range files {
		if err := os.Remove(f); err != nil {
			return fmt.Errorf("remove %s: %w", f, err)
		}
	}
	return nil
}

// Refresh clears the cache and downloads the latest documents.
func (c *Client) Refresh(ctx context.Context) error {
	if err := c.ClearCache(); err != nil {
		return err
	}
	if _, err := c.Champions(ctx); err != nil {
		return err
	}
	if _, err := c.Items(ctx); err != nil {
		return err
	}
	_, err := c.Runes(ctx)
	return err
}

// FilterChampions returns champions whose name, id or tag contains query
// (case-insensitive). An empty query returns all.
func FilterChampions(champs []Champion, query string) []Champion {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return champs
	}
	var out []Champion
	for _, ch := range champs {
		if strings.Contains(strings.ToLower(ch.Name), q) || strings.Contains(strings.ToLower(ch.ID), q) || hasTag(ch.Tags, q) {
			out = append(out, ch)
		}
	}
	return out
}

// FilterItems returns items whose name or tag contains query.
func FilterItems(items []Item, query string) []Item {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items
	}
	var out []Item
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Name), q) || hasTag(it.Tags, q) {
			out = append(out, it)
		}
	}
	return out
}

func hasTag(tags []string, q string) bool {
	for _, t := range tags {
		if strings.ToLower(t) == q {
			return true
		}
	}
	return false
}

// document loads a per-patch data file from the cache or the CDN.
func (c *Client) document(ctx context.Context, name string, out interface{}) error {
	if c.readCache(name, out) {
		return nil
	}
	version, err := c.LatestVersion(ctx)
	if err != nil {
		return err
	}
	var raw json.RawMessage
	if err := c.get(ctx, fmt.Sprintf("/cdn/%s/data/%s/%s", version, locale, name), &raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	c.writeRaw(name, raw)
	return nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: HTTP %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) readCache(name string, out interface{}) bool {
	if c.cacheDir == "" {
		return false
	}
	b, err := os.ReadFile(filepath.Join(c.cacheDir, name))
	if err != nil {
		return false
	}
	if err := json.Unmarshal(b, out); err != nil {
		log.Warn().Err(err).Str("file", name).Msg("ddragon: ignoring corrupt cache entry")
		return false
	}
	return true
}

func (c *Client) writeCache(name string, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.writeRaw(name, b)
}

func (c *Client) writeRaw(name string, b []byte) {
	if c.cacheDir == "" {
		return
	}
	if err := os.MkdirAll(c.cacheDir, 0o755); err != nil {
		log.Warn().Err(err).Msg("ddragon: cannot create cache dir")
		return
	}
	if err := os.WriteFile(filepath.Join(c.cacheDir, name), b, 0o644); err != nil {
		log.Warn().Err(err).Str("file", name).Msg("ddragon: cache write failed")
	}
}
