package notion

import (
	"context"

	"github.com/jomei/notionapi"
)

//go:generate mockgen -source=notionapi_interfaces.go -destination=mock_notion/mock_notionapi.go -package=mock_notion
type PageService interface {
	Create(context.Context, *notionapi.PageCreateRequest) (*notionapi.Page, error)
	Update(context.Context, notionapi.PageID, *notionapi.PageUpdateRequest) (*notionapi.Page, error)
	Get(context.Context, notionapi.PageID) (*notionapi.Page, error)
}
