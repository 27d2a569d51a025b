package internals

import "escapenote-server/model"

// Paginate turns a batch fetched with take+1 rows into a page of at most take items.
// The extra row is only a sentinel proving that another page exists: it is dropped
// and EndCursor points at the new last item.
func Paginate[T model.Identifiable](items []T, take int) model.PageResult[T] {
	if take < 0 {
		take = 0
	}

	hasNext := len(items) > take
	if hasNext {
		// remove sentinel
		items = items[:take]
	}
	if items == nil {
		items = []T{}
	}

	pageInfo := model.PageInfo{HasNextPage: hasNext}
	if len(items) > 0 {
		startCursor := items[0].GetID()
		pageInfo.StartCursor = &startCursor
		if hasNext {
			endCursor := items[len(items)-1].GetID()
			pageInfo.EndCursor = &endCursor
		}
	}

	return model.PageResult[T]{
		PageInfo: pageInfo,
		Items:    items,
	}
}
