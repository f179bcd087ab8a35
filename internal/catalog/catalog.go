package catalog

import "strings"

// Product — карточка товара на витрине.
type Product struct {
	Name        string
	Description string
	Price       string
	Image       string
}

// Page — страница каталога с товарами одной категории.
type Page struct {
	File     string
	Category string
}

// Pages — страницы каталога витрины.
var Pages = []Page{
	{File: "index.html", Category: "All Products"},
	{File: "tablet.html", Category: "Tablet"},
	{File: "camera.html", Category: "Cameras"},
	{File: "speaker.html", Category: "Speaker"},
	{File: "watch.html", Category: "Watch"},
	{File: "Headphone.html", Category: "Headphone"},
	{File: "laptop.html", Category: "Laptop"},
}

// SearchResult — результат поиска по странице каталога.
// Matched и Unmatched сохраняют относительный порядок товаров внутри каждой группы.
type SearchResult struct {
	Matched   []Product
	Unmatched []Product
}

// Found сообщает, нашлось ли хоть что-то.
func (r SearchResult) Found() bool {
	return len(r.Matched) > 0
}

// Ordered возвращает товары в порядке отображения: сначала совпавшие, затем остальные.
func (r SearchResult) Ordered() []Product {
	ordered := make([]Product, 0, len(r.Matched)+len(r.Unmatched))
	ordered = append(ordered, r.Matched...)
	ordered = append(ordered, r.Unmatched...)
	return ordered
}

// Search фильтрует товары по подстроке без учёта регистра в названии или описании.
// Пустой запрос возвращает все товары в исходном порядке.
func Search(query string, products []Product) SearchResult {
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return SearchResult{Matched: append([]Product(nil), products...)}
	}

	var result SearchResult
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Description), term) {
			result.Matched = append(result.Matched, p)
		} else {
			result.Unmatched = append(result.Unmatched, p)
		}
	}
	return result
}

// SuggestPage подбирает страницу каталога, категория которой совпадает с запросом.
// Используется, когда на текущей странице ничего не нашлось.
func SuggestPage(query string, pages []Page) (Page, bool) {
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return Page{}, false
	}
	for _, page := range pages {
		if strings.Contains(strings.ToLower(page.Category), term) {
			return page, true
		}
	}
	return Page{}, false
}

// Categories возвращает список категорий для подсказки, без сводной страницы "All Products".
func Categories(pages []Page) []string {
	var categories []string
	for _, page := range pages {
		if page.File == "index.html" {
			continue
		}
		categories = append(categories, page.Category)
	}
	return categories
}
