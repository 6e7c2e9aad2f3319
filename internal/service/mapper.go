package service

import (
	"fruitwarehouse/internal/dto"
	"fruitwarehouse/internal/model"
)

func deliveryToResponse(d *model.Delivery) dto.DeliveryResponse {
	totals := d.Totals()
	resp := dto.DeliveryResponse{
		ID:             d.ID.String(),
		DeliveryNumber: d.DeliveryNumber.String(),
		SupplierID:     d.SupplierID.String(),
		DeliveryDate:   dto.NewLocalDateTime(d.DeliveryDate),
		CreatedAt:      dto.NewLocalDateTime(d.CreatedAt),
		Items:          make([]dto.DeliveryItemResponse, 0, len(d.Items)),
		TotalWeight:    totals.Weight,
		TotalCost:      totals.Cost,
	}
	if d.Supplier != nil {
		resp.SupplierName = d.Supplier.Name
	}
	if d.Status != nil {
		resp.Status = d.Status.Name
	}
	for _, it := range d.Items {
		item := dto.DeliveryItemResponse{
			ID:         it.ID.String(),
			LineNumber: it.LineNumber,
			ProductID:  it.ProductID.String(),
			Weight:     it.Weight,
			UnitPrice:  it.UnitPrice,
			TotalPrice: it.TotalPrice,
		}
		if it.Product != nil {
			item.ProductName = it.Product.Name
			item.ProductType = it.Product.TypeName()
			item.Variety = it.Product.VarietyName
		}
		resp.Items = append(resp.Items, item)
	}
	return resp
}

func priceToResponse(p *model.SupplierProductPrice) dto.PriceResponse {
	resp := dto.PriceResponse{
		ID:            p.ID.String(),
		SupplierID:    p.SupplierID.String(),
		ProductID:     p.ProductID.String(),
		Price:         p.Price,
		EffectiveFrom: dto.NewLocalDate(p.EffectiveFrom),
		CreatedAt:     dto.NewLocalDateTime(p.CreatedAt),
	}
	if p.EffectiveTo != nil {
		to := dto.NewLocalDate(*p.EffectiveTo)
		resp.EffectiveTo = &to
	}
	if p.Product != nil {
		resp.ProductName = p.Product.Name
		resp.ProductType = p.Product.TypeName()
		resp.Variety = p.Product.VarietyName
	}
	return resp
}

func supplierToResponse(s *model.Supplier) dto.SupplierResponse {
	return dto.SupplierResponse{
		ID:           s.ID.String(),
		Name:         s.Name,
		ContactEmail: s.ContactEmail,
		PhoneNumber:  s.PhoneNumber,
		CreatedAt:    dto.NewLocalDateTime(s.CreatedAt),
	}
}

func productToResponse(p *model.Product) dto.ProductResponse {
	resp := dto.ProductResponse{
		ID:              p.ID.String(),
		Name:            p.Name,
		ProductTypeName: p.TypeName(),
		VarietyName:     p.VarietyName,
		Description:     p.Description,
		CreatedAt:       dto.NewLocalDateTime(p.CreatedAt),
	}
	if p.ProductType != nil {
		resp.ProductType = string(p.ProductType.Code)
	}
	return resp
}
