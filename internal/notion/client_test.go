package notion

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/jomei/notionapi"

	"readwise2org/internal/models"
	"readwise2org/internal/notion/mock_notion"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		apiKey      string
		parentID    string
		expectError bool
	}{
		{
			name:        "Valid configuration",
			apiKey:      "test_key",
			parentID:    "test_page_id",
			expectError: false,
		},
		{
			name:        "Missing API key",
			apiKey:      "",
			parentID:    "test_page_id",
			expectError: true,
		},
		{
			name:        "Missing parent page ID",
			apiKey:      "test_key",
			parentID:    "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Unsetenv("NOTION_API_KEY")
			if tt.apiKey != "" {
				os.Setenv("NOTION_API_KEY", tt.apiKey)
				defer os.Unsetenv("NOTION_API_KEY")
			}

			client, err := New(tt.parentID)
			if tt.expectError {
				if err == nil {
					t.Error("Expected error, got nil")
				}
			} else {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				if client == nil {
					t.Error("Expected client, got nil")
				}
			}
		})
	}
}

func TestMirrorDocument(t *testing.T) {
	os.Setenv("NOTION_API_KEY", "test_key")
	defer os.Unsetenv("NOTION_API_KEY")

	client, err := New("parent_id")
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	ctx := context.Background()

	book := models.Book{
		ID:      1,
		Title:   "Walden",
		Summary: "Life in the woods.",
		Highlights: []models.Highlight{
			{ID: 10, Text: "Simplify.", Note: "revisit"},
			{ID: 11, Text: "Quiet desperation."},
		},
	}

	tests := map[string]struct {
		setupMocks  func(mockClient *mock_notion.MockNotionClient, mockPage *mock_notion.MockPageService)
		expectError bool
	}{
		"Success": {
			setupMocks: func(mockClient *mock_notion.MockNotionClient, mockPage *mock_notion.MockPageService) {
				mockClient.EXPECT().Page().Return(mockPage)
				mockPage.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
					func(_ context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error) {
						if req.Parent.PageID != notionapi.PageID("parent_id") {
							t.Errorf("Unexpected parent: %v", req.Parent.PageID)
						}
						// Summary paragraph + 2 highlights + 1 note
						if len(req.Children) != 4 {
							t.Errorf("Expected 4 blocks, got %d", len(req.Children))
						}
						return &notionapi.Page{ID: "created"}, nil
					})
			},
		},
		"Create fails": {
			setupMocks: func(mockClient *mock_notion.MockNotionClient, mockPage *mock_notion.MockPageService) {
				mockClient.EXPECT().Page().Return(mockPage)
				mockPage.EXPECT().Create(ctx, gomock.Any()).Return(nil, errors.New("rate limited"))
			},
			expectError: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockClient := mock_notion.NewMockNotionClient(ctrl)
			mockPage := mock_notion.NewMockPageService(ctrl)

			client.client = mockClient
			tt.setupMocks(mockClient, mockPage)

			err := client.MirrorDocument(ctx, &book)
			if tt.expectError {
				if err == nil {
					t.Error("Expected error but got nil")
				}
			} else if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}
