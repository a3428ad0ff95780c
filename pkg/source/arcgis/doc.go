// Package arcgis paginates an ArcGIS FeatureServer query endpoint using
// resultOffset/resultRecordCount/orderByFields, stopping only when a
// page is both shorter than the requested page size and the server
// reports exceededTransferLimit=false. A short page with the transfer
// limit still set true means more records remain at the same offset
// window and pagination must continue.
package arcgis
