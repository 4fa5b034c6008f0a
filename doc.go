/*
Package sheetkit provides helper utilities for reading and writing
spreadsheet data across three backends: local .xlsx workbooks, Google Sheets
worksheets and spreadsheets stored on a cloud drive.

sheetkit can be used from the command line but is really intended to be run
from cron jobs that keep departmental class lists, marks and enrolment
sheets in sync.

The sheetkit CLI supports the following commands:

  - authorise, to authorise sheetkit against Google Sheets or the cloud drive
  - get, to download a worksheet range to a local .tsv or .xlsx file
  - put, to store a local .tsv or .xlsx file to a worksheet range
  - merge/unmerge, to merge or split worksheet cell ranges
  - download, to fetch a file from the cloud drive
  - upload, to store a file on the cloud drive

The xlsx, gsheets and disk packages are usable as libraries in their own
right.
*/
package sheetkit
