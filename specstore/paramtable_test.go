package specstore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleParamTableCSV = `ga4_key,dev_guide_var,event_name,category,is_custom_dimension,value_type,description,extraction_hint
item_id,상품코드,view_item,item,false,string,product SKU,dataLayer.product.id
item_brand,브랜드,view_item,item,false,string,brand name,dataLayer.product.brand
cd_login_status,로그인상태,view_item,user,true,string,login state custom dimension,cookie:login
value,주문금액,purchase,event,false,number,order total,dataLayer.order.total
`

func TestParseParamTable_GroupsByEvent(t *testing.T) {
	cfgs, err := ParseParamTable(strings.NewReader(sampleParamTableCSV))
	require.NoError(t, err)

	viewItem, ok := cfgs["view_item"]
	require.True(t, ok)
	assert.Len(t, viewItem.Parameters, 3)
	assert.Equal(t, 1, viewItem.Summary.Custom)
	assert.Equal(t, 2, viewItem.Summary.Standard)
	assert.True(t, viewItem.HasItems)

	purchase, ok := cfgs["purchase"]
	require.True(t, ok)
	assert.Len(t, purchase.Parameters, 1)
	assert.Equal(t, ValueNumber, purchase.Parameters[0].ValueType)
}

func TestParseParamTable_RejectsMissingColumn(t *testing.T) {
	_, err := ParseParamTable(strings.NewReader("ga4_key,event_name\nitem_id,view_item\n"))
	assert.Error(t, err)
}

func TestParseParamTable_EmptyInputYieldsEmptyMap(t *testing.T) {
	cfgs, err := ParseParamTable(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, cfgs)
}
