package handler

import (
	"github.com/storeldb/storeapi/internal/api/dto"
	"github.com/storeldb/storeapi/internal/core/domain"
)

func toClientResponse(client *domain.Client) dto.ClientResponse {
	return dto.ClientResponse{
		ClientID: client.ID,
		Name:     client.Name,
		Email:    client.Email,
	}
}

func toClientResponses(clients []*domain.Client) []dto.ClientResponse {
	out := make([]dto.ClientResponse, len(clients))
	for i, c := range clients {
		out[i] = toClientResponse(c)
	}
	return out
}

func toClientSalesResponses(sales []*domain.ClientSales) []dto.ClientSalesResponse {
	out := make([]dto.ClientSalesResponse, len(sales))
	for i, s := range sales {
		out[i] = dto.ClientSalesResponse{
			ClientID:            s.ClientID,
			ClientName:          s.ClientName,
			ClientEmail:         s.ClientEmail,
			TotalOrders:         s.TotalOrders,
			TotalProducts:       s.TotalQuantity,
			TotalSales:          s.TotalSales,
			AverageSalePerOrder: s.AverageSale,
			FirstOrderDate:      s.FirstOrderDate,
			LastOrderDate:       s.LastOrderDate,
		}
	}
	return out
}

func toProductResponse(product *domain.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ProductID:   product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
	}
}

func toProductResponses(products []*domain.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}
	return out
}

func toOrderItemResponses(items []*domain.OrderItem) []dto.OrderItemResponse {
	out := make([]dto.OrderItemResponse, len(items))
	for i, item := range items {
		out[i] = dto.OrderItemResponse{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		}
	}
	return out
}

func toOrderResponse(order *domain.OrderListing) dto.OrderResponse {
	return dto.OrderResponse{
		OrderID:    order.OrderID,
		OrderDate:  order.OrderDate,
		ClientName: order.ClientName,
		Items:      toOrderItemResponses(order.Items),
	}
}

func toOrderResponses(orders []*domain.OrderListing) []dto.OrderResponse {
	out := make([]dto.OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = toOrderResponse(o)
	}
	return out
}

func toOrderWithDetailsResponse(order *domain.OrderWithDetails) dto.OrderWithDetailsResponse {
	resp := dto.OrderWithDetailsResponse{
		OrderID:    order.OrderID,
		OrderDate:  order.OrderDate,
		Client:     toClientResponse(order.Client),
		Details:    make([]dto.OrderLineResponse, len(order.Lines)),
		OrderTotal: order.Total,
	}
	for i, line := range order.Lines {
		resp.Details[i] = dto.OrderLineResponse{
			OrderDetailID:      line.OrderDetailID,
			ProductID:          line.ProductID,
			ProductName:        line.ProductName,
			ProductDescription: line.ProductDescription,
			ProductPrice:       line.UnitPrice,
			Quantity:           line.Quantity,
			Subtotal:           line.Subtotal,
		}
	}
	return resp
}
