package shop

import "strconv"

const TopicOrderPlaced = "storefront.order.placed"

// PartitionKey keeps all events of one order on the same partition.
func PartitionKey(orderID int64) []byte { return []byte(strconv.FormatInt(orderID, 10)) }
