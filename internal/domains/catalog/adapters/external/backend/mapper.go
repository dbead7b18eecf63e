package backend

import (
	backendclient "github.com/Apurer/go-gin-storefront/internal/clients/http/backend"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
)

func toCategory(c backendclient.Category) domain.Category {
	return domain.Category{ID: c.ID, Name: c.Name, NameEn: c.NameEn, NameAr: c.NameAr, Slug: c.Slug}
}

func toImage(img backendclient.ProductImage) domain.ProductImage {
	return domain.ProductImage{ID: img.ID, ProductID: img.ProductID, URL: img.URL, AltText: img.AltText}
}

func toProduct(p backendclient.Product) domain.Product {
	out := domain.Product{
		ID:            p.ID,
		Name:          p.Name,
		NameEn:        p.NameEn,
		NameAr:        p.NameAr,
		Description:   p.Description,
		DescriptionEn: p.DescriptionEn,
		DescriptionAr: p.DescriptionAr,
		Price:         p.Price,
		Stock:         p.Stock,
		SKU:           p.SKU,
		CategoryID:    p.CategoryID,
		Ingredients:   p.Ingredients,
		IngredientsEn: p.IngredientsEn,
		IngredientsAr: p.IngredientsAr,
		Usage:         p.Usage,
		UsageEn:       p.UsageEn,
		UsageAr:       p.UsageAr,
		IsFeatured:    p.IsFeatured,
		CreatedAt:     p.CreatedAt,
		Images:        make([]domain.ProductImage, 0, len(p.Images)),
	}
	if p.Category != nil {
		category := toCategory(*p.Category)
		out.Category = &category
	}
	for _, img := range p.Images {
		out.Images = append(out.Images, toImage(img))
	}
	return out
}

func toPayload(f domain.ProductForm) backendclient.ProductPayload {
	return backendclient.ProductPayload{
		Name:          f.Name,
		NameEn:        f.NameEn,
		NameAr:        f.NameAr,
		Description:   f.Description,
		DescriptionEn: f.DescriptionEn,
		DescriptionAr: f.DescriptionAr,
		Price:         f.Price,
		Stock:         f.Stock,
		SKU:           f.SKU,
		CategoryID:    f.CategoryID,
		Ingredients:   f.Ingredients,
		IngredientsEn: f.IngredientsEn,
		IngredientsAr: f.IngredientsAr,
		Usage:         f.Usage,
		UsageEn:       f.UsageEn,
		UsageAr:       f.UsageAr,
		IsFeatured:    f.IsFeatured,
	}
}

func toParams(q domain.ProductQuery) backendclient.ProductParams {
	return backendclient.ProductParams{
		Search:   q.Search,
		Category: q.CategoryID,
		MinPrice: q.MinPrice,
		MaxPrice: q.MaxPrice,
		Sort:     string(q.Sort),
		Featured: q.Featured,
	}
}
