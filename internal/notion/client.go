// Package notion mirrors synced documents into Notion as an optional
// secondary sink.
package notion

import (
	"context"
	"fmt"
	"os"

	"github.com/jomei/notionapi"

	"readwise2org/internal/logger"
	"readwise2org/internal/models"
)

// Client wraps the Notion API client
type Client struct {
	client     NotionClient
	parentID   notionapi.PageID
	parentType notionapi.ParentType
}

// New creates a new Notion mirror client. The API key is read from the
// NOTION_API_KEY environment variable.
func New(parentPageID string) (*Client, error) {
	apiKey := os.Getenv("NOTION_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("NOTION_API_KEY is not set")
	}
	if parentPageID == "" {
		return nil, fmt.Errorf("notion parent page id is not set")
	}

	notionClient := notionapi.NewClient(notionapi.Token(apiKey))
	return &Client{
		client:     newNotionClientAdapter(notionClient),
		parentID:   notionapi.PageID(parentPageID),
		parentType: "page_id",
	}, nil
}

// MirrorDocument creates one Notion page for a synced document under the
// configured parent page, with the highlights and notes as blocks.
func (c *Client) MirrorDocument(ctx context.Context, book *models.Book) error {
	logger.Debug("Mirroring document to Notion", map[string]interface{}{
		"title":      book.Title,
		"highlights": len(book.Highlights),
	})

	pageParams := &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:   c.parentType,
			PageID: c.parentID,
		},
		Properties: notionapi.Properties{
			"title": notionapi.TitleProperty{
				Title: []notionapi.RichText{
					{
						Text: &notionapi.Text{
							Content: book.Title,
						},
					},
				},
			},
		},
		Children: c.documentBlocks(book),
	}

	if _, err := c.client.Page().Create(ctx, pageParams); err != nil {
		return fmt.Errorf("failed to create mirror page: %w", err)
	}

	return nil
}

// documentBlocks converts a document into Notion blocks: the summary as a
// leading paragraph, then one bulleted item per highlight with its note
// as a trailing paragraph.
func (c *Client) documentBlocks(book *models.Book) []notionapi.Block {
	var blocks []notionapi.Block

	if book.Summary != "" {
		blocks = append(blocks, c.createParagraphBlock(book.Summary))
	}

	for i := range book.Highlights {
		h := &book.Highlights[i]
		blocks = append(blocks, c.createBulletedListBlock(h.Text))
		if h.Note != "" {
			blocks = append(blocks, c.createParagraphBlock("Note: "+h.Note))
		}
	}

	return blocks
}

// createBulletedListBlock creates a bulleted list item block
func (c *Client) createBulletedListBlock(text string) notionapi.Block {
	return &notionapi.BulletedListItemBlock{
		BasicBlock: notionapi.BasicBlock{
			Object: "block",
			Type:   notionapi.BlockTypeBulletedListItem,
		},
		BulletedListItem: notionapi.ListItem{
			RichText: []notionapi.RichText{
				{
					Text: &notionapi.Text{
						Content: text,
					},
				},
			},
		},
	}
}

// createParagraphBlock creates a paragraph block
func (c *Client) createParagraphBlock(text string) notionapi.Block {
	return &notionapi.ParagraphBlock{
		BasicBlock: notionapi.BasicBlock{
			Object: "block",
			Type:   notionapi.BlockTypeParagraph,
		},
		Paragraph: notionapi.Paragraph{
			RichText: []notionapi.RichText{
				{
					Text: &notionapi.Text{
						Content: text,
					},
				},
			},
		},
	}
}
