package export

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCleanTextStripsPictographs(t *testing.T) {
	require.Equal(t, "500g Chicken Breast", CleanText("🍗 500g Chicken Breast"))
	require.Equal(t, "Eggs x2", CleanText("Eggs ✅ x2 ☀️"))
	require.Equal(t, "Crème fraîche", CleanText("Crème\u0007 fraîche​"))
	require.Equal(t, "Tofu - firm", CleanText("Tofu\t-\tfirm 🥡"))
	require.Equal(t, "", CleanText("🥑🥑"))
}

func TestFileName(t *testing.T) {
	date := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)
	require.Equal(t, "MealMate_List_2026-03-09.pdf", FileName(date))
}

func TestWriteGroceryPDF(t *testing.T) {
	items := make([]string, 0, 40)
	for i := 0; i < 40; i++ {
		items = append(items, fmt.Sprintf("%d00g Rice 🍚", i+1))
	}

	var buf bytes.Buffer
	err := WriteGroceryPDF(&buf, GroceryExport{
		UserName: "Ada",
		Servings: 2,
		Date:     time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC),
		Items:    items,
	})
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	require.Equal(t, 2, renderGroceryList(GroceryExport{Items: items}).PageCount())
	require.Equal(t, 1, renderGroceryList(GroceryExport{Items: items[:22]}).PageCount())
}
