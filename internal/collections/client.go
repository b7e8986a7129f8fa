// Package collections is the client for the backend collection and folder
// endpoints. It resolves route-name drift between backend versions, maps
// legacy field names onto the canonical item shape, and keeps a per-session
// cache of the signed-in user's items.
package collections

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/tidwall/gjson"

	"github.com/retrohunt/retro-hunter/internal/auth"
	"github.com/retrohunt/retro-hunter/internal/resolver"
	domain "github.com/retrohunt/retro-hunter/pkg/types"
)

// Client manages the signed-in user's collection.
type Client struct {
	baseURL string
	res     *resolver.Resolver
	routes  Routes
	tokens  auth.TokenSource
	log     *slog.Logger
	now     func() time.Time

	mu      sync.Mutex
	items   []domain.CollectionItem
	folders []domain.Folder
}

// Option configures the Client.
type Option func(*Client)

// WithResolver replaces the default endpoint resolver.
func WithResolver(r *resolver.Resolver) Option {
	return func(c *Client) {
		c.res = r
	}
}

// WithRoutes overlays custom route candidates on the defaults.
func WithRoutes(r Routes) Option {
	return func(c *Client) {
		c.routes = c.routes.merge(r)
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// New creates a Client for the given backend base URL. All operations
// require a token from tokens.
func New(baseURL string, tokens auth.TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		routes:  DefaultRoutes(),
		tokens:  tokens,
		log:     slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.res == nil {
		c.res = resolver.New(resolver.WithLogger(c.log))
	}
	return c
}

// List fetches the user's items, replaces the session cache and returns the
// cached copy. Rows belonging to other users are dropped before caching.
func (c *Client) List(ctx context.Context, userID string) ([]domain.CollectionItem, error) {
	token, err := c.tokens.Token()
	if err != nil {
		return nil, err
	}

	candidates := expand(c.baseURL, c.routes.ListItems, map[string]string{"userID": userID})
	body, err := c.res.Get(ctx, candidates, token)
	if err != nil {
		return nil, fmt.Errorf("listing collection: %w", err)
	}

	rows := resolver.OwnedBy(resolver.Items(body), userID)
	items := make([]domain.CollectionItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, decodeItem(row))
	}

	c.mu.Lock()
	c.items = items
	c.mu.Unlock()

	c.log.Info("collection loaded", "user", userID, "items", len(items))
	return c.Items(), nil
}

// Add creates an item and appends the created record to the cache.
func (c *Client) Add(ctx context.Context, item domain.CollectionItem) (domain.CollectionItem, error) {
	token, err := c.tokens.Token()
	if err != nil {
		return domain.CollectionItem{}, err
	}
	if item.GameTitle == "" {
		return domain.CollectionItem{}, fmt.Errorf("adding item: game title is required")
	}

	candidates := expand(c.baseURL, c.routes.CreateItem, nil)
	respBody, err := c.res.Post(ctx, candidates, token, encodeItem(item))
	if err != nil {
		return domain.CollectionItem{}, fmt.Errorf("adding item: %w", err)
	}

	// The backend echoes the created record when it can. Fall back to the
	// submitted item so callers always get something usable back.
	created := item
	if parsed := gjson.ParseBytes(respBody); parsed.IsObject() {
		if decoded := decodeItem(parsed); decoded.ID != "" {
			created = decoded
		}
	}

	c.mu.Lock()
	c.items = append(c.items, created)
	c.mu.Unlock()

	return created, nil
}

// Update pushes the full item to the server and, on success, replaces the
// cached copy.
func (c *Client) Update(ctx context.Context, item domain.CollectionItem) error {
	token, err := c.tokens.Token()
	if err != nil {
		return err
	}
	if item.ID == "" {
		return fmt.Errorf("updating item: id is required")
	}

	candidates := expand(c.baseURL, c.routes.UpdateItem, map[string]string{"id": item.ID})
	if _, err := c.res.Put(ctx, candidates, token, encodeItem(item)); err != nil {
		return fmt.Errorf("updating item %s: %w", item.ID, err)
	}

	c.replaceCached(item)
	return nil
}

// MoveToFolder reassigns an item's folder. An empty folderID removes it
// from any folder.
func (c *Client) MoveToFolder(ctx context.Context, itemID, folderID string) error {
	item, ok := c.cachedItem(itemID)
	if !ok {
		return fmt.Errorf("moving item %s: not in the loaded collection", itemID)
	}
	item.FolderID = folderID
	return c.Update(ctx, item)
}

// Delete removes an item server-side and drops it from the cache.
func (c *Client) Delete(ctx context.Context, itemID string) error {
	token, err := c.tokens.Token()
	if err != nil {
		return err
	}
	if itemID == "" {
		return fmt.Errorf("deleting item: id is required")
	}

	candidates := expand(c.baseURL, c.routes.DeleteItem, map[string]string{"id": itemID})
	if _, err := c.res.Delete(ctx, candidates, token); err != nil {
		return fmt.Errorf("deleting item %s: %w", itemID, err)
	}

	c.mu.Lock()
	kept := c.items[:0]
	for _, cached := range c.items {
		if cached.ID != itemID {
			kept = append(kept, cached)
		}
	}
	c.items = kept
	c.mu.Unlock()

	return nil
}

// Items returns a copy of the cached items.
func (c *Client) Items() []domain.CollectionItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.CollectionItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Client) cachedItem(id string) (domain.CollectionItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range c.items {
		if item.ID == id {
			return item, true
		}
	}
	return domain.CollectionItem{}, false
}

func (c *Client) replaceCached(item domain.CollectionItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == item.ID {
			c.items[i] = item
			return
		}
	}
}
