package specstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleGuide = `
# Development Guide

## view_item
- 이벤트 이름: view_item
- 필수 여부: 필수
- 발생 조건: 상품 상세 페이지 진입 시
- 허용 페이지: PRODUCT_DETAIL
- 필요 UI: 없음

## add_to_cart
- 이벤트 이름: add_to_cart
- 필수 여부: 필수
- 발생 조건: 장바구니 담기 버튼 클릭 시
- 허용 페이지: PRODUCT_DETAIL, PRODUCT_LIST
- 사용자 액션: 클릭

## add_to_cart
- 이벤트 이름: add_to_cart
- 허용 페이지: CART
`

func TestParseGuide_ExtractsFieldsPerEvent(t *testing.T) {
	defs, err := ParseGuide([]byte(sampleGuide), GuideOptions{})
	require.NoError(t, err)

	viewItem, ok := defs["view_item"]
	require.True(t, ok)
	assert.True(t, viewItem.Required)
	assert.Contains(t, viewItem.AllowedPageTypes, "PRODUCT_DETAIL")
	assert.True(t, viewItem.AutoFire)
}

func TestParseGuide_MergesRepeatedEventMentions(t *testing.T) {
	defs, err := ParseGuide([]byte(sampleGuide), GuideOptions{})
	require.NoError(t, err)

	addToCart, ok := defs["add_to_cart"]
	require.True(t, ok)
	assert.True(t, addToCart.Required, "required from first mention must survive the merge")
	assert.Contains(t, addToCart.AllowedPageTypes, "PRODUCT_DETAIL")
	assert.Contains(t, addToCart.AllowedPageTypes, "PRODUCT_LIST")
	assert.Contains(t, addToCart.AllowedPageTypes, "CART")
	assert.True(t, addToCart.RequiresUserAction)
}

func TestParseGuide_NoSectionsYieldsEmptyMap(t *testing.T) {
	defs, err := ParseGuide([]byte("no events documented here"), GuideOptions{})
	require.NoError(t, err)
	assert.Empty(t, defs)
}
