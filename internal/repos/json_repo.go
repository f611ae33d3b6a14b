package repos

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"posledger/internal/domain"
	"posledger/internal/money"
)

// JSONFile keeps the whole store in one JSON document.
type JSONFile struct {
	Path string
}

func NewJSONFile(path string) *JSONFile { return &JSONFile{Path: path} }

func (r *JSONFile) String() string { return "json:" + r.Path }

type fileState struct {
	Produtos []productRecord `json:"produtos"`
	Vendas   []saleRecord    `json:"vendas"`
}

type productRecord struct {
	Codigo  int         `json:"codigo"`
	Nome    string      `json:"nome"`
	Preco   money.Money `json:"preco"`
	Estoque int         `json:"estoque"`
}

type itemRecord struct {
	CodigoProduto int         `json:"codigo_produto"`
	NomeProduto   string      `json:"nome_produto"`
	PrecoUnit     money.Money `json:"preco_unit"`
	Quantidade    int         `json:"quantidade"`
	TotalLinha    money.Money `json:"total_linha"`
}

// A missing desconto_percent decodes as the zero amount, which is "0.00".
type saleRecord struct {
	ID              int          `json:"id"`
	DataHora        string       `json:"data_hora"`
	Itens           []itemRecord `json:"itens"`
	Subtotal        money.Money  `json:"subtotal"`
	DescontoPercent money.Money  `json:"desconto_percent"`
	Total           money.Money  `json:"total"`
}

// Load reads the file. A missing file is an empty state.
func (r *JSONFile) Load() (domain.State, error) {
	b, err := os.ReadFile(r.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.State{}, nil
	}
	if err != nil {
		return domain.State{}, fmt.Errorf("read %s: %w", r.Path, err)
	}
	return decodeState(b)
}

// Save replaces the file atomically.
func (r *JSONFile) Save(st domain.State) error {
	b, err := encodeState(st)
	if err != nil {
		return err
	}
	dir := filepath.Dir(r.Path)
	tmp, err := os.CreateTemp(dir, filepath.Base(r.Path)+".tmp*")
	if err != nil {
		return fmt.Errorf("save %s: %w", r.Path, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("save %s: %w", r.Path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save %s: %w", r.Path, err)
	}
	if err := os.Rename(tmp.Name(), r.Path); err != nil {
		return fmt.Errorf("save %s: %w", r.Path, err)
	}
	return nil
}

func decodeState(b []byte) (domain.State, error) {
	var fsState fileState
	if err := json.Unmarshal(b, &fsState); err != nil {
		return domain.State{}, fmt.Errorf("decode state: %w", err)
	}
	st := domain.State{
		Products: make([]domain.Product, 0, len(fsState.Produtos)),
		Sales:    make([]domain.Sale, 0, len(fsState.Vendas)),
	}
	for _, p := range fsState.Produtos {
		st.Products = append(st.Products, domain.Product{Code: p.Codigo, Name: p.Nome, Price: p.Preco, Stock: p.Estoque})
	}
	for _, v := range fsState.Vendas {
		at, err := domain.ParseStamp(v.DataHora)
		if err != nil {
			return domain.State{}, fmt.Errorf("decode sale %d: %w", v.ID, err)
		}
		items := make([]domain.LineItem, 0, len(v.Itens))
		for _, it := range v.Itens {
			items = append(items, domain.LineItem{
				ProductCode: it.CodigoProduto,
				ProductName: it.NomeProduto,
				UnitPrice:   it.PrecoUnit,
				Quantity:    it.Quantidade,
				LineTotal:   it.TotalLinha,
			})
		}
		sale, err := domain.RestoreSale(v.ID, at, items, v.Subtotal, v.DescontoPercent, v.Total)
		if err != nil {
			return domain.State{}, fmt.Errorf("decode sale %d: %w", v.ID, err)
		}
		st.Sales = append(st.Sales, sale)
	}
	return st, nil
}

func encodeState(st domain.State) ([]byte, error) {
	out := fileState{
		Produtos: make([]productRecord, 0, len(st.Products)),
		Vendas:   make([]saleRecord, 0, len(st.Sales)),
	}
	for _, p := range st.Products {
		out.Produtos = append(out.Produtos, productRecord{Codigo: p.Code, Nome: p.Name, Preco: p.Price, Estoque: p.Stock})
	}
	for _, s := range st.Sales {
		rec := saleRecord{
			ID:              s.ID,
			DataHora:        domain.Stamp(s.Timestamp),
			Itens:           make([]itemRecord, 0, len(s.Items)),
			Subtotal:        s.Subtotal,
			DescontoPercent: s.DiscountPercent,
			Total:           s.Total,
		}
		for _, it := range s.Items {
			rec.Itens = append(rec.Itens, itemRecord{
				CodigoProduto: it.ProductCode,
				NomeProduto:   it.ProductName,
				PrecoUnit:     it.UnitPrice,
				Quantidade:    it.Quantity,
				TotalLinha:    it.LineTotal,
			})
		}
		out.Vendas = append(out.Vendas, rec)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return buf.Bytes(), nil
}
