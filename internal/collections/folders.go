package collections

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/retrohunt/retro-hunter/internal/resolver"
	domain "github.com/retrohunt/retro-hunter/pkg/types"
)

// ListFolders fetches the user's folders and replaces the cached set.
func (c *Client) ListFolders(ctx context.Context, userID string) ([]domain.Folder, error) {
	token, err := c.tokens.Token()
	if err != nil {
		return nil, err
	}

	candidates := expand(c.baseURL, c.routes.ListFolders, map[string]string{"userID": userID})
	body, err := c.res.Get(ctx, candidates, token)
	if err != nil {
		return nil, fmt.Errorf("listing folders: %w", err)
	}

	rows := resolver.OwnedBy(resolver.Items(body), userID)
	folders := make([]domain.Folder, 0, len(rows))
	for _, row := range rows {
		folders = append(folders, decodeFolder(row))
	}

	c.mu.Lock()
	c.folders = folders
	c.mu.Unlock()

	return c.Folders(), nil
}

// CreateFolder creates a folder and appends it to the cache.
func (c *Client) CreateFolder(ctx context.Context, folder domain.Folder) (domain.Folder, error) {
	token, err := c.tokens.Token()
	if err != nil {
		return domain.Folder{}, err
	}
	if folder.Name == "" {
		return domain.Folder{}, fmt.Errorf("creating folder: name is required")
	}

	candidates := expand(c.baseURL, c.routes.CreateFolder, nil)
	respBody, err := c.res.Post(ctx, candidates, token, folder)
	if err != nil {
		return domain.Folder{}, fmt.Errorf("creating folder: %w", err)
	}

	created := folder
	if parsed := gjson.ParseBytes(respBody); parsed.IsObject() {
		if decoded := decodeFolder(parsed); decoded.ID != "" {
			created = decoded
		}
	}

	c.mu.Lock()
	c.folders = append(c.folders, created)
	c.mu.Unlock()

	return created, nil
}

// UpdateFolder pushes folder changes to the server and refreshes the cache.
func (c *Client) UpdateFolder(ctx context.Context, folder domain.Folder) error {
	token, err := c.tokens.Token()
	if err != nil {
		return err
	}
	if folder.ID == "" {
		return fmt.Errorf("updating folder: id is required")
	}

	candidates := expand(c.baseURL, c.routes.UpdateFolder, map[string]string{"id": folder.ID})
	if _, err := c.res.Put(ctx, candidates, token, folder); err != nil {
		return fmt.Errorf("updating folder %s: %w", folder.ID, err)
	}

	c.mu.Lock()
	for i := range c.folders {
		if c.folders[i].ID == folder.ID {
			c.folders[i] = folder
			break
		}
	}
	c.mu.Unlock()

	return nil
}

// DeleteFolder removes a folder. Items keep existing; any cached item in the
// folder has its folder reference cleared, matching the server's behavior.
func (c *Client) DeleteFolder(ctx context.Context, folderID string) error {
	token, err := c.tokens.Token()
	if err != nil {
		return err
	}
	if folderID == "" {
		return fmt.Errorf("deleting folder: id is required")
	}

	candidates := expand(c.baseURL, c.routes.DeleteFolder, map[string]string{"id": folderID})
	if _, err := c.res.Delete(ctx, candidates, token); err != nil {
		return fmt.Errorf("deleting folder %s: %w", folderID, err)
	}

	c.mu.Lock()
	kept := c.folders[:0]
	for _, f := range c.folders {
		if f.ID != folderID {
			kept = append(kept, f)
		}
	}
	c.folders = kept
	for i := range c.items {
		if c.items[i].FolderID == folderID {
			c.items[i].FolderID = ""
		}
	}
	c.mu.Unlock()

	return nil
}

// Folders returns a copy of the cached folders.
func (c *Client) Folders() []domain.Folder {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Folder, len(c.folders))
	copy(out, c.folders)
	return out
}
